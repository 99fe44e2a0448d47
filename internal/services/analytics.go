package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"superstore-dashboard/internal/models"
	"superstore-dashboard/internal/observability"
)

const defaultCacheSize = 512

// Analytics owns the loaded table and answers view requests against it.
// The table is swapped whole on reload; readers never see a partial load.
type Analytics struct {
	mu          sync.RWMutex
	table       *Table
	generation  uint64
	csvPath     string
	loadedAt    time.Time
	snapshotDir string
	cacheSize   int
	cache       *lru.Cache[string, models.ViewPayload]
	logger      *slog.Logger
}

type Option func(*Analytics)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Analytics) { a.logger = logger }
}

// WithSnapshotDir enables the parsed-table snapshot in dir.
func WithSnapshotDir(dir string) Option {
	return func(a *Analytics) { a.snapshotDir = dir }
}

// WithCacheSize bounds the view result cache. Zero disables it.
func WithCacheSize(n int) Option {
	return func(a *Analytics) { a.cacheSize = n }
}

func NewAnalytics(opts ...Option) *Analytics {
	a := &Analytics{
		table:     NewTable(nil),
		cacheSize: defaultCacheSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cacheSize > 0 {
		// only fails for a non-positive size
		a.cache, _ = lru.New[string, models.ViewPayload](a.cacheSize)
	}
	return a
}

func (a *Analytics) SetData(records []models.Record) {
	a.swap(NewTable(records), "")
}

func (a *Analytics) LoadFromCSV(ctx context.Context, filename string) error {
	if a.snapshotDir != "" {
		if t, err := loadSnapshot(a.snapshotDir, filename); err == nil {
			a.swap(t, filename)
			a.logger.Info("loaded from snapshot", "records", t.Len())
			return nil
		}
	}

	start := time.Now()
	a.logger.Info("processing CSV file", "filename", filename)

	t, err := LoadTable(ctx, filename)
	if err != nil {
		return err
	}
	a.swap(t, filename)

	if a.snapshotDir != "" {
		if err := saveSnapshot(a.snapshotDir, filename, t); err != nil {
			a.logger.Warn("failed to save snapshot", "error", err)
		}
	}

	duration := time.Since(start)
	a.logger.Info("csv processing complete",
		"records", t.Len(),
		"duration", duration,
		"rate", fmt.Sprintf("%.0f records/sec", float64(t.Len())/duration.Seconds()))

	return nil
}

func (a *Analytics) swap(t *Table, path string) {
	a.mu.Lock()
	a.table = t
	a.generation++
	a.csvPath = path
	a.loadedAt = time.Now()
	if a.cache != nil {
		a.cache.Purge()
	}
	a.mu.Unlock()

	observability.TableRows.Set(float64(t.Len()))
}

func (a *Analytics) snapshot() (*Table, uint64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.table, a.generation
}

func (a *Analytics) Table() *Table {
	t, _ := a.snapshot()
	return t
}

func (a *Analytics) Loaded() bool {
	return a.Table().Len() > 0
}

// View computes the payload for one view under spec. Results are cached per
// resolved spec, so "All" and explicit default dates share an entry.
func (a *Analytics) View(spec models.FilterSpec, view models.View, category string, theme models.Theme) models.ViewPayload {
	t, gen := a.snapshot()

	if err := spec.Validate(); err != nil {
		a.logger.Debug("empty date range requested", "error", err)
	}

	if models.IsAll(category) || view != models.ViewCategory {
		category = models.All
	}
	key := fmt.Sprintf("%d|%s|%s|%s|%s", gen, view, t.Resolve(spec).Key(), category, theme.Name)

	if a.cache != nil {
		if payload, ok := a.cache.Get(key); ok {
			observability.ViewCacheLookups.WithLabelValues("hit").Inc()
			return payload
		}
		observability.ViewCacheLookups.WithLabelValues("miss").Inc()
	}

	timer := prometheus.NewTimer(observability.PipelineDuration.WithLabelValues(view.Slug()))
	payload := BuildView(t, spec, view, category, theme)
	timer.ObserveDuration()

	if a.cache != nil {
		a.cache.Add(key, payload)
	}
	return payload
}

func (a *Analytics) Options() models.FilterOptions {
	return a.Table().Options()
}

// Utility method for monitoring
func (a *Analytics) Stats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	minDate, maxDate := a.table.DateBounds()
	cached := 0
	if a.cache != nil {
		cached = a.cache.Len()
	}
	return map[string]any{
		"record_count":   a.table.Len(),
		"csv_file":       a.csvPath,
		"loaded_at":      a.loadedAt,
		"generation":     a.generation,
		"min_order_date": minDate,
		"max_order_date": maxDate,
		"cached_views":   cached,
	}
}
