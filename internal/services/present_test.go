package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superstore-dashboard/internal/models"
)

func chartIDs(p models.ViewPayload) []string {
	ids := make([]string, len(p.Charts))
	for i, c := range p.Charts {
		ids[i] = c.ID
	}
	return ids
}

func TestBuildView_Charts(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		view  models.View
		title string
		ids   []string
	}{
		{models.ViewOverview, "SUPERSTORE SALES DASHBOARD", []string{}},
		{models.ViewSales, "Sales by Category & Region", []string{"sales-by-category", "sales-by-region"}},
		{models.ViewTrends, "Sales By Time", []string{"sales-over-time"}},
		{models.ViewCategory, "Category Analysis", []string{"sales-by-subcategory"}},
		{models.ViewProduct, "Product Performance", []string{"top-products"}},
		{models.ViewLocation, "Sales by State & City", []string{"sales-by-state", "sales-by-city"}},
		{models.ViewShipping, "Shipping Analysis", []string{"ship-mode-distribution"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			p := BuildView(table, models.AllFilter(), tt.view, models.All, models.LightTheme)

			assert.Equal(t, tt.view, p.View)
			assert.Equal(t, tt.title, p.Title)
			assert.Equal(t, tt.ids, chartIDs(p))
			assert.Len(t, p.Cards, 6)
			assert.Equal(t, 5, p.RowCount)
			assert.Equal(t, models.LightTheme, p.Theme)
		})
	}
}

func TestBuildView_Cards(t *testing.T) {
	p := BuildView(sampleTable(), models.AllFilter(), models.ViewOverview, models.All, models.DarkTheme)

	want := []models.MetricCard{
		{Label: "Total Sales", Icon: "📈", Value: "$1,450"},
		{Label: "Qty Sold", Icon: "🛒", Value: "11"},
		{Label: "Total Profit", Icon: "💰", Value: "$50"},
		{Label: "Top Category", Icon: "🏆", Value: "Technology"},
		{Label: "Top City", Icon: "🏙️", Value: "Los Angeles"},
		{Label: "Orders", Icon: "📦", Value: "4"},
	}
	assert.Equal(t, want, p.Cards)
	assert.NotEmpty(t, p.Intro)
}

func TestBuildView_EmptyFilter(t *testing.T) {
	spec := models.FilterSpec{Region: "North"}

	for _, view := range models.Views {
		t.Run(string(view), func(t *testing.T) {
			p := BuildView(sampleTable(), spec, view, models.All, models.LightTheme)

			assert.Equal(t, 0, p.RowCount)
			assert.Equal(t, "$0", p.Cards[0].Value)
			assert.Equal(t, models.NoValue, p.Cards[3].Value)
			assert.Equal(t, models.NoValue, p.Cards[4].Value)
			assert.Equal(t, "0", p.Cards[5].Value)
			for _, c := range p.Charts {
				assert.Empty(t, c.Points, c.ID)
			}
		})
	}
}

func TestBuildView_CategoryOptions(t *testing.T) {
	table := sampleTable()

	p := BuildView(table, models.FilterSpec{Region: "West"}, models.ViewCategory, "Furniture", models.LightTheme)

	assert.Equal(t, "Furniture", p.Category)
	assert.Equal(t, []string{models.All, "Furniture", "Technology"}, p.Options)
	require.Len(t, p.Charts, 1)
	assert.Equal(t, []models.Point{{Label: "Chairs", Value: 200}}, p.Charts[0].Points)
	// the cards keep describing the whole filtered view
	assert.Equal(t, "$1,000", p.Cards[0].Value)
}

func TestBuildView_ShippingMetric(t *testing.T) {
	p := BuildView(sampleTable(), models.AllFilter(), models.ViewShipping, models.All, models.LightTheme)

	require.Len(t, p.Metrics, 1)
	assert.Equal(t, "Avg. Shipping Days", p.Metrics[0].Label)
	assert.Equal(t, "2.6 days", p.Metrics[0].Value)
	assert.Equal(t, models.ChartPie, p.Charts[0].Kind)
}

func TestBuildView_NilTable(t *testing.T) {
	p := BuildView(nil, models.AllFilter(), models.ViewSales, models.All, models.LightTheme)

	assert.Equal(t, 0, p.RowCount)
	require.Len(t, p.Charts, 2)
	assert.Empty(t, p.Charts[0].Points)
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999.4, "$999"},
		{1234567.89, "$1,234,568"},
		{-1200, "$-1,200"},
	}

	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(12345); got != "12,345" {
		t.Errorf("FormatCount(12345) = %q, want %q", got, "12,345")
	}
}
