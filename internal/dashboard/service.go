package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopadmin/shopadmin/internal/core/cache"
	"github.com/shopadmin/shopadmin/internal/core/storage"
)

// Report names used in logs and metrics.
const (
	ReportStats = "stats"
	ReportPie   = "pie"
	ReportBar   = "bar"
	ReportLine  = "line"
)

// ReportObserver is notified after every report computation on a cache miss.
type ReportObserver interface {
	ObserveReport(report string, took time.Duration, err error)
}

type nopReportObserver struct{}

func (nopReportObserver) ObserveReport(string, time.Duration, error) {}

// Service builds the admin dashboard reports. Reports are served from the cache
// when present and computed from the repository otherwise.
type Service struct {
	repo     storage.Repository
	cache    *cache.Store
	observer ReportObserver
	nowFn    func() time.Time
}

// NewService creates a dashboard service. observer may be nil.
func NewService(repo storage.Repository, store *cache.Store, observer ReportObserver) *Service {
	if observer == nil {
		observer = nopReportObserver{}
	}
	return &Service{
		repo:     repo,
		cache:    store,
		observer: observer,
		nowFn:    time.Now,
	}
}

// cached returns the report stored under key, or builds and stores it.
// A failed build stores nothing, and neither does a build that overlapped an
// invalidation.
func cached[T any](ctx context.Context, s *Service, key cache.Key, report string, build func(context.Context, time.Time) (T, error)) (T, error) {
	epoch := s.cache.Epoch()
	if v, ok := cache.Load[T](s.cache, key); ok {
		return v, nil
	}

	started := time.Now()
	v, err := build(ctx, s.nowFn())
	s.observer.ObserveReport(report, time.Since(started), err)
	if err != nil {
		var zero T
		return zero, err
	}

	stored, err := cache.SaveIfEpoch(s.cache, key, v, epoch)
	switch {
	case err != nil:
		slog.Error("[Dashboard] Failed to cache report", "report", report, "error", err)
	case !stored:
		slog.Debug("[Dashboard] Skipped caching report invalidated during build", "report", report)
	}

	slog.Debug("[Dashboard] Report computed",
		"report", report,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return v, nil
}
