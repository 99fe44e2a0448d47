package models

import (
	"fmt"
	"strings"
)

type View string

const (
	ViewOverview View = "Overview"
	ViewSales    View = "Sales"
	ViewTrends   View = "Trends"
	ViewCategory View = "Category"
	ViewProduct  View = "Product"
	ViewLocation View = "Location"
	ViewShipping View = "Shipping"
)

// Views lists the navigation entries in menu order.
var Views = []View{
	ViewOverview,
	ViewSales,
	ViewTrends,
	ViewCategory,
	ViewProduct,
	ViewLocation,
	ViewShipping,
}

// ParseView matches a view name case-insensitively. "home" is accepted as
// the old name of the overview page.
func ParseView(s string) (View, error) {
	name := strings.TrimSpace(s)
	if strings.EqualFold(name, "home") || name == "" {
		return ViewOverview, nil
	}
	for _, v := range Views {
		if strings.EqualFold(name, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// Slug is the lowercase form used in URLs.
func (v View) Slug() string {
	return strings.ToLower(string(v))
}

type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartPie  ChartKind = "pie"
	ChartLine ChartKind = "line"
)

type Chart struct {
	ID     string    `json:"id"`
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	XLabel string    `json:"x_label,omitempty"`
	YLabel string    `json:"y_label,omitempty"`
	Points []Point   `json:"points"`
}

type MetricCard struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Value string `json:"value"`
}

// ViewPayload is everything a renderer needs to draw one view.
type ViewPayload struct {
	View     View         `json:"view"`
	Title    string       `json:"title"`
	Intro    string       `json:"intro,omitempty"`
	Filter   FilterSpec   `json:"filter"`
	Category string       `json:"category,omitempty"`
	Summary  Summary      `json:"summary"`
	Cards    []MetricCard `json:"cards"`
	Charts   []Chart      `json:"charts"`
	Metrics  []MetricCard `json:"metrics,omitempty"`
	Options  []string     `json:"options,omitempty"`
	RowCount int          `json:"row_count"`
	Theme    Theme        `json:"theme"`
}
