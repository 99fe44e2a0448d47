package models

import (
	"errors"
	"fmt"
	"time"
)

// All is the selector value meaning "do not constrain on this field".
const All = "All"

const DateLayout = "2006-01-02"

var ErrInvalidFilterRange = errors.New("start date is after end date")

// FilterSpec is the set of user-chosen constraints for one render pass.
// A zero Start or End means "use the table's bound".
type FilterSpec struct {
	Region string    `json:"region"`
	State  string    `json:"state"`
	City   string    `json:"city"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

func AllFilter() FilterSpec {
	return FilterSpec{Region: All, State: All, City: All}
}

// IsAll reports whether v leaves a categorical field unconstrained.
func IsAll(v string) bool {
	return v == "" || v == All
}

func (f FilterSpec) Validate() error {
	if !f.Start.IsZero() && !f.End.IsZero() && f.Start.After(f.End) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidFilterRange,
			f.Start.Format(DateLayout), f.End.Format(DateLayout))
	}
	return nil
}

// Key is a stable string form used for cache keys and logs.
func (f FilterSpec) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s",
		normalize(f.Region), normalize(f.State), normalize(f.City),
		formatDate(f.Start), formatDate(f.End))
}

func normalize(v string) string {
	if IsAll(v) {
		return All
	}
	return v
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

type FilterOptions struct {
	Regions []string  `json:"regions"`
	States  []string  `json:"states"`
	Cities  []string  `json:"cities"`
	MinDate time.Time `json:"min_date"`
	MaxDate time.Time `json:"max_date"`
}
