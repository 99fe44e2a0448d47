package services

import (
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"superstore-dashboard/internal/models"
)

// RankingSize is the number of entries kept by the top-N charts.
const RankingSize = 10

// Grouping helpers return groups in ascending key order. Rankings sort that
// order stably by value, so ties stay alphabetical and results never depend on
// map iteration. Rows with a blank key are left out of every grouping.

func sumSales(v FilteredView, key func(*models.Record) string) []models.Point {
	sums := make(map[string]decimal.Decimal)
	v.each(func(r *models.Record) {
		k := key(r)
		if k == "" {
			return
		}
		sums[k] = sums[k].Add(decimal.NewFromFloat(r.Sales))
	})

	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	points := make([]models.Point, len(keys))
	for i, k := range keys {
		points[i] = models.Point{Label: k, Value: sums[k].InexactFloat64()}
	}
	return points
}

func rankDesc(points []models.Point, limit int) []models.Point {
	slices.SortStableFunc(points, func(a, b models.Point) int {
		switch {
		case a.Value > b.Value:
			return -1
		case a.Value < b.Value:
			return 1
		}
		return 0
	})
	if limit > 0 && len(points) > limit {
		points = points[:limit]
	}
	return points
}

// argmax returns the label of the first largest point, or models.NoValue.
func argmax(points []models.Point) string {
	if len(points) == 0 {
		return models.NoValue
	}
	best := 0
	for i := 1; i < len(points); i++ {
		if points[i].Value > points[best].Value {
			best = i
		}
	}
	return points[best].Label
}

func Summarize(v FilteredView) models.Summary {
	var sales, profit decimal.Decimal
	quantity := 0
	orders := make(map[string]struct{})

	v.each(func(r *models.Record) {
		sales = sales.Add(decimal.NewFromFloat(r.Sales))
		profit = profit.Add(decimal.NewFromFloat(r.Profit))
		quantity += r.Quantity
		orders[r.OrderID] = struct{}{}
	})

	return models.Summary{
		TotalSales:    sales.InexactFloat64(),
		TotalQuantity: quantity,
		TotalProfit:   profit.InexactFloat64(),
		TopCategory:   argmax(SalesByCategory(v)),
		TopCity:       argmax(sumSales(v, func(r *models.Record) string { return r.City })),
		OrderCount:    len(orders),
	}
}

func SalesByCategory(v FilteredView) []models.Point {
	return sumSales(v, func(r *models.Record) string { return r.Category })
}

func SalesByRegion(v FilteredView) []models.Point {
	return sumSales(v, func(r *models.Record) string { return r.Region })
}

func SalesByShipMode(v FilteredView) []models.Point {
	return sumSales(v, func(r *models.Record) string { return r.ShipMode })
}

// MonthlyTrend sums sales per calendar month of the order date. Months
// without rows are left out rather than reported as zero.
func MonthlyTrend(v FilteredView) []models.MonthPoint {
	points := sumSales(v, func(r *models.Record) string {
		if r.OrderDate.IsZero() {
			return ""
		}
		return r.OrderDate.Format("2006-01")
	})
	trend := make([]models.MonthPoint, len(points))
	for i, p := range points {
		trend[i] = models.MonthPoint{Month: p.Label, Sales: p.Value}
	}
	return trend
}

// SubcategoryBreakdown sums sales per sub-category inside category ("All"
// for every category), largest first.
func SubcategoryBreakdown(v FilteredView, category string) []models.Point {
	scoped := FilterCategory(v, category)
	return rankDesc(sumSales(scoped, func(r *models.Record) string { return r.SubCategory }), 0)
}

func TopProducts(v FilteredView, n int) []models.Point {
	return rankDesc(sumSales(v, func(r *models.Record) string { return r.ProductName }), n)
}

func TopStates(v FilteredView, n int) []models.Point {
	return rankDesc(sumSales(v, func(r *models.Record) string { return r.State }), n)
}

func TopCities(v FilteredView, n int) []models.Point {
	return rankDesc(sumSales(v, func(r *models.Record) string { return r.City }), n)
}

// Shipping reports sales per ship mode and the mean number of whole days
// between order and shipment. AvgDays is nil when no row has both dates.
func Shipping(v FilteredView) models.ShippingStats {
	total, count := 0.0, 0
	v.each(func(r *models.Record) {
		if r.OrderDate.IsZero() || r.ShipDate.IsZero() {
			return
		}
		total += math.Floor(r.ShipDate.Sub(r.OrderDate).Hours() / 24)
		count++
	})

	stats := models.ShippingStats{ByMode: SalesByShipMode(v)}
	if count > 0 {
		avg := total / float64(count)
		stats.AvgDays = &avg
	}
	return stats
}

// Categories lists the product categories present in the view.
func Categories(v FilteredView) []string {
	return v.Distinct(func(r *models.Record) string { return r.Category })
}

func labelOrNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return models.NoValue
	}
	return s
}
