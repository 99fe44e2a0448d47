// Package templates renders the dashboard page and the fragments that the
// SSE handlers patch into it.
package templates

import (
	"context"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"superstore-dashboard/internal/models"
)

type DashboardProps struct {
	Options models.FilterOptions
	Payload models.ViewPayload
}

type barRow struct {
	Label string
	Value float64
	Share float64
	Width float64
	Pie   bool
}

type chartData struct {
	models.Chart
	Rows []barRow
}

type viewData struct {
	models.ViewPayload
	ChartBlocks []chartData
}

type pageData struct {
	Props   DashboardProps
	View    viewData
	Views   []models.View
	Signals string
}

func Dashboard(props DashboardProps) templ.Component {
	return component(pageTemplate, pageData{
		Props:   props,
		View:    newViewData(props.Payload),
		Views:   models.Views,
		Signals: initialSignals(props.Payload),
	})
}

// MetricCards renders the #metric-cards fragment.
func MetricCards(cards []models.MetricCard) templ.Component {
	return component(pageTemplate.Lookup("cards"), cards)
}

// ViewContent renders the #view-content fragment for one view.
func ViewContent(payload models.ViewPayload) templ.Component {
	return component(pageTemplate.Lookup("view"), newViewData(payload))
}

// RenderString renders c into a string, for use in SSE patches.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var buf strings.Builder
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func component(t *template.Template, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return t.Execute(w, data)
	})
}

func newViewData(p models.ViewPayload) viewData {
	blocks := make([]chartData, len(p.Charts))
	for i, c := range p.Charts {
		blocks[i] = chartData{Chart: c, Rows: chartRows(c.Points, c.Kind == models.ChartPie)}
	}
	return viewData{ViewPayload: p, ChartBlocks: blocks}
}

// chartRows scales each point against the largest value for bar widths and
// against the total for pie shares. Negative values draw as empty bars.
func chartRows(points []models.Point, pie bool) []barRow {
	var peak, total float64
	for _, p := range points {
		if p.Value > peak {
			peak = p.Value
		}
		if p.Value > 0 {
			total += p.Value
		}
	}

	rows := make([]barRow, len(points))
	for i, p := range points {
		row := barRow{Label: p.Label, Value: p.Value, Pie: pie}
		if peak > 0 && p.Value > 0 {
			row.Width = p.Value / peak * 100
		}
		if total > 0 && p.Value > 0 {
			row.Share = p.Value / total * 100
		}
		rows[i] = row
	}
	return rows
}

func initialSignals(p models.ViewPayload) string {
	start, end := "", ""
	if !p.Filter.Start.IsZero() {
		start = p.Filter.Start.Format(models.DateLayout)
	}
	if !p.Filter.End.IsZero() {
		end = p.Filter.End.Format(models.DateLayout)
	}
	category := p.Category
	if category == "" {
		category = models.All
	}
	return signalsJSON(map[string]string{
		"view":     p.View.Slug(),
		"region":   p.Filter.Region,
		"state":    p.Filter.State,
		"city":     p.Filter.City,
		"start":    start,
		"end":      end,
		"category": category,
		"theme":    p.Theme.Name,
	})
}
