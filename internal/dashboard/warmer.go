package dashboard

import (
	"context"
	"log/slog"
	"time"
)

// Warmer rebuilds missing dashboard reports on a fixed interval so the first
// admin request after a mutation does not pay for the fan-out. Reports already in
// the cache are left alone.
type Warmer struct {
	interval time.Duration
	service  *Service
}

// NewWarmer creates a warmer for the given service.
func NewWarmer(interval time.Duration, service *Service) *Warmer {
	return &Warmer{interval: interval, service: service}
}

// Start warms once and then on every tick until ctx is cancelled.
func (w *Warmer) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.Info("[Warmer] Starting dashboard cache warmer", "interval", w.interval)

	w.WarmOnce(ctx)
	for {
		select {
		case <-ticker.C:
			w.WarmOnce(ctx)
		case <-ctx.Done():
			slog.Info("[Warmer] Stopping (context cancelled)")
			return nil
		}
	}
}

// WarmOnce computes each report that is not cached. Failures are logged and the
// remaining reports are still attempted.
func (w *Warmer) WarmOnce(ctx context.Context) {
	reports := []struct {
		name  string
		build func(context.Context) error
	}{
		{ReportStats, func(ctx context.Context) error { _, err := w.service.DashboardStats(ctx); return err }},
		{ReportPie, func(ctx context.Context) error { _, err := w.service.PieCharts(ctx); return err }},
		{ReportBar, func(ctx context.Context) error { _, err := w.service.BarCharts(ctx); return err }},
		{ReportLine, func(ctx context.Context) error { _, err := w.service.LineCharts(ctx); return err }},
	}

	for _, r := range reports {
		if ctx.Err() != nil {
			return
		}
		if err := r.build(ctx); err != nil {
			slog.Error("[Warmer] Failed to warm report", "report", r.name, "error", err)
		}
	}
}
