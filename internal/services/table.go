package services

import (
	"slices"
	"time"

	"superstore-dashboard/internal/models"
)

// Table is the loaded dataset. It is never modified after construction and
// may be shared freely between requests.
type Table struct {
	records []models.Record
	minDate time.Time
	maxDate time.Time
}

func NewTable(records []models.Record) *Table {
	t := &Table{records: slices.Clone(records)}
	for i := range t.records {
		d := t.records[i].OrderDate
		if d.IsZero() {
			continue
		}
		if t.minDate.IsZero() || d.Before(t.minDate) {
			t.minDate = d
		}
		if t.maxDate.IsZero() || d.After(t.maxDate) {
			t.maxDate = d
		}
	}
	return t
}

func (t *Table) Len() int {
	return len(t.records)
}

func (t *Table) At(i int) models.Record {
	return t.records[i]
}

// DateBounds returns the earliest and latest order date in the table.
func (t *Table) DateBounds() (time.Time, time.Time) {
	return t.minDate, t.maxDate
}

// Resolve fills unset date bounds with the table's own bounds and truncates
// both to the day so that the range compares inclusively against order dates.
func (t *Table) Resolve(spec models.FilterSpec) models.FilterSpec {
	if models.IsAll(spec.Region) {
		spec.Region = models.All
	}
	if models.IsAll(spec.State) {
		spec.State = models.All
	}
	if models.IsAll(spec.City) {
		spec.City = models.All
	}
	if spec.Start.IsZero() {
		spec.Start = t.minDate
	}
	if spec.End.IsZero() {
		spec.End = t.maxDate
	}
	spec.Start = truncateDay(spec.Start)
	spec.End = truncateDay(spec.End)
	return spec
}

// Distinct returns the sorted set of non-empty values of a field.
func (t *Table) Distinct(field func(*models.Record) string) []string {
	return distinct(len(t.records), func(i int) string { return field(&t.records[i]) })
}

// Options returns the values offered by the filter widgets, each list
// starting with the "All" selector.
func (t *Table) Options() models.FilterOptions {
	return models.FilterOptions{
		Regions: withAll(t.Distinct(func(r *models.Record) string { return r.Region })),
		States:  withAll(t.Distinct(func(r *models.Record) string { return r.State })),
		Cities:  withAll(t.Distinct(func(r *models.Record) string { return r.City })),
		MinDate: t.minDate,
		MaxDate: t.maxDate,
	}
}

func distinct(n int, value func(i int) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := 0; i < n; i++ {
		v := value(i)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

func withAll(values []string) []string {
	return append([]string{models.All}, values...)
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
