package services

import (
	"superstore-dashboard/internal/models"
)

const overviewIntro = "An interactive view of sales trends, product performance and customer " +
	"behaviour. Pick a page from the navigation and narrow the data with the filters above."

var viewTitles = map[models.View]string{
	models.ViewOverview: "SUPERSTORE SALES DASHBOARD",
	models.ViewSales:    "Sales by Category & Region",
	models.ViewTrends:   "Sales By Time",
	models.ViewCategory: "Category Analysis",
	models.ViewProduct:  "Product Performance",
	models.ViewLocation: "Sales by State & City",
	models.ViewShipping: "Shipping Analysis",
}

func ViewTitle(v models.View) string {
	return viewTitles[v]
}

// Cards turns a summary into the six metric cards shown above every view.
func Cards(s models.Summary) []models.MetricCard {
	return []models.MetricCard{
		{Label: "Total Sales", Icon: "📈", Value: FormatMoney(s.TotalSales)},
		{Label: "Qty Sold", Icon: "🛒", Value: FormatCount(s.TotalQuantity)},
		{Label: "Total Profit", Icon: "💰", Value: FormatMoney(s.TotalProfit)},
		{Label: "Top Category", Icon: "🏆", Value: labelOrNone(s.TopCategory)},
		{Label: "Top City", Icon: "🏙️", Value: labelOrNone(s.TopCity)},
		{Label: "Orders", Icon: "📦", Value: FormatCount(s.OrderCount)},
	}
}

// BuildView runs one full filter and aggregate pass for a view. category is
// only read by the Category view.
func BuildView(t *Table, spec models.FilterSpec, view models.View, category string, theme models.Theme) models.ViewPayload {
	if t == nil {
		t = NewTable(nil)
	}
	resolved := t.Resolve(spec)
	fv := Filter(t, resolved)
	summary := Summarize(fv)

	payload := models.ViewPayload{
		View:     view,
		Title:    ViewTitle(view),
		Filter:   resolved,
		Summary:  summary,
		Cards:    Cards(summary),
		Charts:   []models.Chart{},
		RowCount: fv.Len(),
		Theme:    theme,
	}

	switch view {
	case models.ViewOverview:
		payload.Intro = overviewIntro

	case models.ViewSales:
		payload.Charts = append(payload.Charts,
			models.Chart{
				ID: "sales-by-category", Kind: models.ChartBar, Title: "Sales by Category",
				XLabel: "Category", YLabel: "Sales", Points: SalesByCategory(fv),
			},
			models.Chart{
				ID: "sales-by-region", Kind: models.ChartPie, Title: "Sales by Region",
				Points: SalesByRegion(fv),
			},
		)

	case models.ViewTrends:
		trend := MonthlyTrend(fv)
		points := make([]models.Point, len(trend))
		for i, m := range trend {
			points[i] = models.Point{Label: m.Month, Value: m.Sales}
		}
		payload.Charts = append(payload.Charts, models.Chart{
			ID: "sales-over-time", Kind: models.ChartLine, Title: "Sales Over Time",
			XLabel: "Time", YLabel: "Sales", Points: points,
		})

	case models.ViewCategory:
		if models.IsAll(category) {
			category = models.All
		}
		payload.Category = category
		payload.Options = withAll(Categories(fv))
		payload.Charts = append(payload.Charts, models.Chart{
			ID: "sales-by-subcategory", Kind: models.ChartBar, Title: "Sales by Subcategory",
			XLabel: "Subcategory", YLabel: "Sales", Points: SubcategoryBreakdown(fv, category),
		})

	case models.ViewProduct:
		payload.Charts = append(payload.Charts, models.Chart{
			ID: "top-products", Kind: models.ChartBar, Title: "Top Products by Sales",
			XLabel: "Product", YLabel: "Sales", Points: TopProducts(fv, RankingSize),
		})

	case models.ViewLocation:
		payload.Charts = append(payload.Charts,
			models.Chart{
				ID: "sales-by-state", Kind: models.ChartBar, Title: "Sales by State",
				XLabel: "State", YLabel: "Sales", Points: TopStates(fv, RankingSize),
			},
			models.Chart{
				ID: "sales-by-city", Kind: models.ChartBar, Title: "Sales by City",
				XLabel: "City", YLabel: "Sales", Points: TopCities(fv, RankingSize),
			},
		)

	case models.ViewShipping:
		stats := Shipping(fv)
		payload.Charts = append(payload.Charts, models.Chart{
			ID: "ship-mode-distribution", Kind: models.ChartPie, Title: "Shipping Mode Distribution",
			Points: stats.ByMode,
		})
		payload.Metrics = []models.MetricCard{
			{Label: "Avg. Shipping Days", Icon: "🚚", Value: FormatDays(stats.AvgDays)},
		}
	}

	return payload
}
