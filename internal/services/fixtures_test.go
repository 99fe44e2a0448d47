package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"superstore-dashboard/internal/models"
)

const csvHeader = "order_id,order_date,ship_date,region,state,city,category,sub_category,product_name,sales,quantity,profit,ship_mode\n"

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sampleRecords is a five row table spanning three regions and three months.
//
//	sales: Technology 800, Furniture 600, Office Supplies 50 (total 1450)
//	cities: Los Angeles 700, Houston 400, Seattle 300, New York City 50
//	ship days: 3, 3, 2, 0, 5
func sampleRecords() []models.Record {
	return []models.Record{
		{
			OrderID: "CA-1", OrderDate: day(2017, 1, 5), ShipDate: day(2017, 1, 8),
			Region: "West", State: "California", City: "Los Angeles",
			Category: "Technology", SubCategory: "Phones", ProductName: "Phone A",
			Sales: 500, Quantity: 2, Profit: 100, ShipMode: "Standard Class",
		},
		{
			OrderID: "CA-1", OrderDate: day(2017, 1, 5), ShipDate: day(2017, 1, 8),
			Region: "West", State: "California", City: "Los Angeles",
			Category: "Furniture", SubCategory: "Chairs", ProductName: "Chair A",
			Sales: 200, Quantity: 1, Profit: 20, ShipMode: "Standard Class",
		},
		{
			OrderID: "NY-2", OrderDate: day(2017, 2, 10), ShipDate: day(2017, 2, 12),
			Region: "East", State: "New York", City: "New York City",
			Category: "Office Supplies", SubCategory: "Paper", ProductName: "Paper A",
			Sales: 50, Quantity: 5, Profit: 10, ShipMode: "Second Class",
		},
		{
			OrderID: "WA-3", OrderDate: day(2017, 3, 15), ShipDate: day(2017, 3, 15),
			Region: "West", State: "Washington", City: "Seattle",
			Category: "Technology", SubCategory: "Phones", ProductName: "Phone B",
			Sales: 300, Quantity: 1, Profit: -30, ShipMode: "Same Day",
		},
		{
			OrderID: "TX-4", OrderDate: day(2017, 3, 20), ShipDate: day(2017, 3, 25),
			Region: "Central", State: "Texas", City: "Houston",
			Category: "Furniture", SubCategory: "Tables", ProductName: "Table A",
			Sales: 400, Quantity: 2, Profit: -50, ShipMode: "First Class",
		},
	}
}

func sampleTable() *Table {
	return NewTable(sampleRecords())
}

func createTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "superstore.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
