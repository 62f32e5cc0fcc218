package reaper

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/metinatakli/seat-reservation-engine/internal/reaper"

type metrics struct {
	swept  metric.Int64Counter
	failed metric.Int64Counter
}

func newMetrics() *metrics {
	meter := otel.Meter(meterName)

	swept, _ := meter.Int64Counter("reaper.units.swept",
		metric.WithDescription("Holds deleted, bookings cancelled or schedules deactivated, by sweep"))
	failed, _ := meter.Int64Counter("reaper.units.failed",
		metric.WithDescription("Schedules or bookings a sweep failed to process, by sweep"))

	return &metrics{
		swept:  swept,
		failed: failed,
	}
}

func (m *metrics) record(ctx context.Context, sweep string, result SweepResult) {
	attrs := metric.WithAttributes(attribute.String("sweep", sweep))

	m.swept.Add(ctx, result.Swept, attrs)
	m.failed.Add(ctx, int64(result.Failed), attrs)
}
