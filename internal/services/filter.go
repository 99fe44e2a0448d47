package services

import (
	"slices"

	"superstore-dashboard/internal/models"
)

// FilteredView is the subset of a Table that satisfies a FilterSpec. It holds
// row indices into the table rather than copies, in table order.
type FilteredView struct {
	table *Table
	rows  []int
}

// Filter keeps the rows matching every active constraint of spec: equality on
// region, state and city unless they are "All", and Start <= order_date <= End.
// A zero Start or End leaves that side of the range open. A range with
// Start after End matches nothing.
func Filter(t *Table, spec models.FilterSpec) FilteredView {
	if t == nil {
		return FilteredView{}
	}

	rows := make([]int, 0, len(t.records))
	for i := range t.records {
		if matches(&t.records[i], spec) {
			rows = append(rows, i)
		}
	}
	return FilteredView{table: t, rows: rows}
}

// FilterCategory narrows a view to one product category. "All" keeps the
// view as it is.
func FilterCategory(v FilteredView, category string) FilteredView {
	if models.IsAll(category) {
		return v
	}
	rows := make([]int, 0, len(v.rows))
	for _, i := range v.rows {
		if v.table.records[i].Category == category {
			rows = append(rows, i)
		}
	}
	return FilteredView{table: v.table, rows: rows}
}

func matches(r *models.Record, spec models.FilterSpec) bool {
	if !models.IsAll(spec.Region) && r.Region != spec.Region {
		return false
	}
	if !models.IsAll(spec.State) && r.State != spec.State {
		return false
	}
	if !models.IsAll(spec.City) && r.City != spec.City {
		return false
	}
	if !spec.Start.IsZero() && r.OrderDate.Before(spec.Start) {
		return false
	}
	if !spec.End.IsZero() && r.OrderDate.After(spec.End) {
		return false
	}
	return true
}

func (v FilteredView) Len() int {
	return len(v.rows)
}

func (v FilteredView) Empty() bool {
	return len(v.rows) == 0
}

func (v FilteredView) At(i int) models.Record {
	return v.table.records[v.rows[i]]
}

// Indices returns the table row numbers in the view.
func (v FilteredView) Indices() []int {
	return slices.Clone(v.rows)
}

func (v FilteredView) Records() []models.Record {
	out := make([]models.Record, len(v.rows))
	for i, row := range v.rows {
		out[i] = v.table.records[row]
	}
	return out
}

func (v FilteredView) each(fn func(r *models.Record)) {
	for _, row := range v.rows {
		fn(&v.table.records[row])
	}
}

// Distinct returns the sorted set of non-empty values of a field in the view.
func (v FilteredView) Distinct(field func(*models.Record) string) []string {
	return distinct(len(v.rows), func(i int) string {
		return field(&v.table.records[v.rows[i]])
	})
}
