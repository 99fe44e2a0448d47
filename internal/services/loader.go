package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/sync/errgroup"

	"superstore-dashboard/internal/models"
)

const (
	batchSize  = 10000
	maxWorkers = 10
)

var (
	ErrMissingColumn  = errors.New("missing required column")
	ErrMalformedValue = errors.New("malformed value")
	ErrNoRecords      = errors.New("no records")
)

// RequiredColumns is the minimum schema of the sales file.
var RequiredColumns = []string{
	"order_id", "order_date", "ship_date",
	"region", "state", "city",
	"category", "sub_category", "product_name",
	"sales", "quantity", "profit", "ship_mode",
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/2006",
	"01/02/2006",
}

// DataSourceError reports a sales file that cannot be turned into a table.
// Nothing is loaded when it is returned.
type DataSourceError struct {
	Path string
	Err  error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %s: %v", e.Path, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// LoadTable reads the sales file at path into an immutable Table.
func LoadTable(ctx context.Context, path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DataSourceError{Path: path, Err: fmt.Errorf("open file: %w", err)}
	}
	defer file.Close()

	df := dataframe.ReadCSV(file,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		// text cells are kept verbatim; blank or non-numeric numbers read as NaN
		dataframe.NaNValues(nil),
		dataframe.WithTypes(map[string]series.Type{
			"sales":    series.Float,
			"profit":   series.Float,
			"quantity": series.Int,
		}),
	)
	if df.Err != nil {
		return nil, &DataSourceError{Path: path, Err: fmt.Errorf("read csv: %w", df.Err)}
	}

	records, err := recordsFromFrame(ctx, df)
	if err != nil {
		return nil, &DataSourceError{Path: path, Err: err}
	}
	return NewTable(records), nil
}

type frameColumns struct {
	orderID, orderDate, shipDate []string
	region, state, city          []string
	category, subCategory, name  []string
	shipMode                     []string
	sales, profit                []float64
	quantity                     []int
}

func recordsFromFrame(ctx context.Context, df dataframe.DataFrame) ([]models.Record, error) {
	names := make(map[string]struct{}, df.Ncol())
	for _, n := range df.Names() {
		names[n] = struct{}{}
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := names[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	n := df.Nrow()
	if n == 0 {
		return nil, ErrNoRecords
	}

	quantity, err := df.Col("quantity").Int()
	if err != nil {
		return nil, fmt.Errorf("%w: quantity: %v", ErrMalformedValue, err)
	}

	cols := frameColumns{
		orderID:     df.Col("order_id").Records(),
		orderDate:   df.Col("order_date").Records(),
		shipDate:    df.Col("ship_date").Records(),
		region:      df.Col("region").Records(),
		state:       df.Col("state").Records(),
		city:        df.Col("city").Records(),
		category:    df.Col("category").Records(),
		subCategory: df.Col("sub_category").Records(),
		name:        df.Col("product_name").Records(),
		shipMode:    df.Col("ship_mode").Records(),
		sales:       df.Col("sales").Float(),
		profit:      df.Col("profit").Float(),
		quantity:    quantity,
	}

	records := make([]models.Record, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)
	for start := 0; start < n; start += batchSize {
		end := min(start+batchSize, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				rec, err := cols.record(i)
				if err != nil {
					// +2: one for the header, one for 1-based line numbers
					return fmt.Errorf("line %d: %w", i+2, err)
				}
				records[i] = rec
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// record converts row i. Blank dates load as the zero time; blank or
// unparsable numbers are rejected.
func (c *frameColumns) record(i int) (models.Record, error) {
	orderDate, err := parseOptionalDate(c.orderDate[i])
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: order_date: %v", ErrMalformedValue, err)
	}
	shipDate, err := parseOptionalDate(c.shipDate[i])
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: ship_date: %v", ErrMalformedValue, err)
	}
	if math.IsNaN(c.sales[i]) {
		return models.Record{}, fmt.Errorf("%w: sales", ErrMalformedValue)
	}
	if math.IsNaN(c.profit[i]) {
		return models.Record{}, fmt.Errorf("%w: profit", ErrMalformedValue)
	}

	return models.Record{
		OrderID:     strings.TrimSpace(c.orderID[i]),
		OrderDate:   orderDate,
		ShipDate:    shipDate,
		Region:      strings.TrimSpace(c.region[i]),
		State:       strings.TrimSpace(c.state[i]),
		City:        strings.TrimSpace(c.city[i]),
		Category:    strings.TrimSpace(c.category[i]),
		SubCategory: strings.TrimSpace(c.subCategory[i]),
		ProductName: strings.TrimSpace(c.name[i]),
		Sales:       c.sales[i],
		Quantity:    c.quantity[i],
		Profit:      c.profit[i],
		ShipMode:    strings.TrimSpace(c.shipMode[i]),
	}, nil
}

// ParseDate accepts the date spellings found in exported spreadsheets and
// returns midnight UTC of that day.
func ParseDate(s string) (time.Time, error) {
	return parseDate(s)
}

func parseOptionalDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return parseDate(s)
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
