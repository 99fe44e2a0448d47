package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superstore-dashboard/internal/models"
)

func TestLoadTable_ValidData(t *testing.T) {
	path := createTempCSV(t, csvHeader+
		`CA-1,2017-01-05,2017-01-08,West,California,Los Angeles,Technology,Phones,Phone A,500,2,100,Standard Class
CA-1,1/5/2017,01/08/2017,West,California,Los Angeles,Furniture,Chairs,"Chair, Black",200.5,1,-20.25,Standard Class
NY-2,2017-02-10 00:00:00,2017-02-12,East,New York,New York City,Office Supplies,Paper,Paper A,50,5,10,Second Class
`)

	table, err := LoadTable(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	first := table.At(0)
	assert.Equal(t, "CA-1", first.OrderID)
	assert.Equal(t, day(2017, 1, 5), first.OrderDate)
	assert.Equal(t, day(2017, 1, 8), first.ShipDate)
	assert.Equal(t, 500.0, first.Sales)
	assert.Equal(t, 2, first.Quantity)

	second := table.At(1)
	assert.Equal(t, "Chair, Black", second.ProductName)
	assert.Equal(t, day(2017, 1, 5), second.OrderDate)
	assert.Equal(t, 200.5, second.Sales)
	assert.Equal(t, -20.25, second.Profit)

	assert.Equal(t, "New York City", table.At(2).City)

	minDate, maxDate := table.DateBounds()
	assert.Equal(t, day(2017, 1, 5), minDate)
	assert.Equal(t, day(2017, 2, 10), maxDate)
}

func TestLoadTable_BlankDates(t *testing.T) {
	path := createTempCSV(t, csvHeader+
		`CA-1,2017-01-05,2017-01-08,West,California,Los Angeles,Technology,Phones,Phone A,500,2,100,Standard Class
CA-2,2017-01-06,,West,California,Los Angeles,Furniture,Chairs,Chair A,200,1,20,Standard Class
NY-3, ,2017-02-12,East,New York,New York City,Office Supplies,Paper,Paper A,50,5,10,Second Class
`)

	table, err := LoadTable(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	assert.Equal(t, day(2017, 1, 6), table.At(1).OrderDate)
	assert.True(t, table.At(1).ShipDate.IsZero())
	assert.True(t, table.At(2).OrderDate.IsZero())
	assert.Equal(t, day(2017, 2, 12), table.At(2).ShipDate)

	minDate, maxDate := table.DateBounds()
	assert.Equal(t, day(2017, 1, 5), minDate)
	assert.Equal(t, day(2017, 1, 6), maxDate)

	// only CA-1 has both dates
	stats := Shipping(Filter(table, models.AllFilter()))
	require.NotNil(t, stats.AvgDays)
	assert.Equal(t, 3.0, *stats.AvgDays)

	// an order without a date falls outside every resolved range
	resolved := Filter(table, table.Resolve(models.AllFilter()))
	assert.Equal(t, []int{0, 1}, resolved.Indices())
	assert.Equal(t, []models.MonthPoint{{Month: "2017-01", Sales: 700}}, MonthlyTrend(Filter(table, models.AllFilter())))
}

func TestLoadTable_KeepsTextCellsVerbatim(t *testing.T) {
	path := createTempCSV(t, csvHeader+
		`CA-1,2017-01-05,2017-01-08,West,California,NA,Technology,Phones,"Phone, Deluxe",500,2,100,Standard Class
CA-2,2017-01-06,2017-01-08,West,California,,Furniture,Chairs,NaN,200,1,20,Standard Class
`)

	table, err := LoadTable(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "NA", table.At(0).City)
	assert.Equal(t, "Phone, Deluxe", table.At(0).ProductName)
	assert.Empty(t, table.At(1).City)
	assert.Equal(t, []string{models.All, "NA"}, table.Options().Cities)
}

func TestLoadTable_KeepsFileOrderAcrossBatches(t *testing.T) {
	var b strings.Builder
	b.WriteString(csvHeader)
	n := batchSize*2 + 7
	for i := range n {
		fmt.Fprintf(&b, "O-%d,2017-01-05,2017-01-06,West,California,Los Angeles,Technology,Phones,Phone,%d,1,0,Same Day\n", i, i)
	}

	table, err := LoadTable(context.Background(), createTempCSV(t, b.String()))
	require.NoError(t, err)
	require.Equal(t, n, table.Len())
	for _, i := range []int{0, batchSize - 1, batchSize, n - 1} {
		assert.Equal(t, fmt.Sprintf("O-%d", i), table.At(i).OrderID)
		assert.Equal(t, float64(i), table.At(i).Sales)
	}
}

func TestLoadTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		is      error
		line    string
	}{
		{
			name:    "missing column",
			content: "order_id,order_date,region\nCA-1,2017-01-05,West\n",
			is:      ErrMissingColumn,
		},
		{
			name: "malformed date",
			content: csvHeader +
				"CA-1,2017-01-05,2017-01-08,West,California,Los Angeles,Technology,Phones,Phone A,500,2,100,Standard Class\n" +
				"CA-2,not-a-date,2017-01-08,West,California,Los Angeles,Technology,Phones,Phone A,500,2,100,Standard Class\n",
			is:   ErrMalformedValue,
			line: "line 3",
		},
		{
			name: "malformed ship date",
			content: csvHeader +
				"CA-1,2017-01-05,soon,West,California,Los Angeles,Technology,Phones,Phone A,500,2,100,Standard Class\n",
			is:   ErrMalformedValue,
			line: "line 2",
		},
		{
			name: "blank sales",
			content: csvHeader +
				"CA-1,2017-01-05,2017-01-08,West,California,Los Angeles,Technology,Phones,Phone A,,2,100,Standard Class\n",
			is:   ErrMalformedValue,
			line: "line 2",
		},
		{
			name: "malformed sales",
			content: csvHeader +
				"CA-1,2017-01-05,2017-01-08,West,California,Los Angeles,Technology,Phones,Phone A,lots,2,100,Standard Class\n",
			is:   ErrMalformedValue,
			line: "line 2",
		},
		{
			name: "malformed quantity",
			content: csvHeader +
				"CA-1,2017-01-05,2017-01-08,West,California,Los Angeles,Technology,Phones,Phone A,500,two,100,Standard Class\n",
			is: ErrMalformedValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createTempCSV(t, tt.content)

			table, err := LoadTable(context.Background(), path)
			require.Error(t, err)
			assert.Nil(t, table)

			var dsErr *DataSourceError
			require.True(t, errors.As(err, &dsErr), "want DataSourceError, got %T", err)
			assert.Equal(t, path, dsErr.Path)
			assert.ErrorIs(t, err, tt.is)
			if tt.line != "" {
				assert.Contains(t, err.Error(), tt.line)
			}
		})
	}
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(context.Background(), "/nonexistent/superstore.csv")

	var dsErr *DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, "/nonexistent/superstore.csv", dsErr.Path)
}

func TestLoadTable_HeaderOnly(t *testing.T) {
	_, err := LoadTable(context.Background(), createTempCSV(t, csvHeader))

	var dsErr *DataSourceError
	assert.ErrorAs(t, err, &dsErr)
}

func TestLoadTable_Cancelled(t *testing.T) {
	path := createTempCSV(t, csvHeader+
		"CA-1,2017-01-05,2017-01-08,West,California,Los Angeles,Technology,Phones,Phone A,500,2,100,Standard Class\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadTable(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2017-03-20", false},
		{"2017-03-20 14:30:00", false},
		{"2017-03-20T14:30:00", false},
		{"3/20/2017", false},
		{"03/20/2017", false},
		{" 2017-03-20 ", false},
		{"20.03.2017", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, day(2017, 3, 20), got)
		})
	}
}
