package models

import "time"

type Record struct {
	OrderID     string    `json:"order_id"`
	OrderDate   time.Time `json:"order_date"`
	ShipDate    time.Time `json:"ship_date"`
	Region      string    `json:"region"`
	State       string    `json:"state"`
	City        string    `json:"city"`
	Category    string    `json:"category"`
	SubCategory string    `json:"sub_category"`
	ProductName string    `json:"product_name"`
	Sales       float64   `json:"sales"`
	Quantity    int       `json:"quantity"`
	Profit      float64   `json:"profit"`
	ShipMode    string    `json:"ship_mode"`
}

type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type MonthPoint struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
}

// Summary backs the six metric cards shown above every view.
type Summary struct {
	TotalSales    float64 `json:"total_sales"`
	TotalQuantity int     `json:"total_quantity"`
	TotalProfit   float64 `json:"total_profit"`
	TopCategory   string  `json:"top_category"`
	TopCity       string  `json:"top_city"`
	OrderCount    int     `json:"order_count"`
}

type ShippingStats struct {
	ByMode  []Point  `json:"by_mode"`
	AvgDays *float64 `json:"avg_days"`
}

// NoValue is reported by label-valued metrics when there is nothing to report.
const NoValue = "-"
