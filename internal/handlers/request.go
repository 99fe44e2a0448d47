package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"superstore-dashboard/internal/models"
	"superstore-dashboard/internal/services"
)

// datastarParam is the query parameter Datastar uses to send signals on GET.
const datastarParam = "datastar"

// viewRequest is the per-request input of one render pass.
type viewRequest struct {
	Spec     models.FilterSpec
	Category string
	Theme    models.Theme
}

// dashboardSignals mirrors the signals declared on the dashboard page.
type dashboardSignals struct {
	Region   string `json:"region"`
	State    string `json:"state"`
	City     string `json:"city"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Category string `json:"category"`
	Theme    string `json:"theme"`
}

func signalsFromQuery(q url.Values) dashboardSignals {
	return dashboardSignals{
		Region:   q.Get("region"),
		State:    q.Get("state"),
		City:     q.Get("city"),
		Start:    q.Get("start"),
		End:      q.Get("end"),
		Category: q.Get("category"),
		Theme:    q.Get("theme"),
	}
}

// readRequest reads filter values from plain query parameters and, when the
// request comes from Datastar, from its signals. Signals win.
func readRequest(r *http.Request) (viewRequest, error) {
	signals := signalsFromQuery(r.URL.Query())
	if r.Method != http.MethodGet || r.URL.Query().Has(datastarParam) {
		if err := datastar.ReadSignals(r, &signals); err != nil {
			return viewRequest{}, fmt.Errorf("read signals: %w", err)
		}
	}
	return signals.toRequest()
}

func (s dashboardSignals) toRequest() (viewRequest, error) {
	start, err := optionalDate("start", s.Start)
	if err != nil {
		return viewRequest{}, err
	}
	end, err := optionalDate("end", s.End)
	if err != nil {
		return viewRequest{}, err
	}

	return viewRequest{
		Spec: models.FilterSpec{
			Region: selector(s.Region),
			State:  selector(s.State),
			City:   selector(s.City),
			Start:  start,
			End:    end,
		},
		Category: selector(s.Category),
		Theme:    models.ThemeByName(s.Theme),
	}, nil
}

func selector(v string) string {
	v = strings.TrimSpace(v)
	if models.IsAll(v) {
		return models.All
	}
	return v
}

func optionalDate(name, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, err := services.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date: %w", name, err)
	}
	return t, nil
}
