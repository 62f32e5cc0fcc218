package reservation

import (
	"context"
	"errors"

	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/metinatakli/seat-reservation-engine/internal/reservation"

type metrics struct {
	holdsGranted      metric.Int64Counter
	holdsRejected     metric.Int64Counter
	holdsReleased     metric.Int64Counter
	bookingsCommitted metric.Int64Counter
	commitsRejected   metric.Int64Counter
	paymentsRecorded  metric.Int64Counter
	bookingsCancelled metric.Int64Counter
}

// newMetrics registers the counters on the global meter provider. Counter
// creation only fails on invalid names, in which case a no-op counter is
// returned alongside the error.
func newMetrics() *metrics {
	meter := otel.Meter(meterName)

	holdsGranted, _ := meter.Int64Counter("reservation.holds.granted",
		metric.WithDescription("Hold requests that were granted"))
	holdsRejected, _ := meter.Int64Counter("reservation.holds.rejected",
		metric.WithDescription("Hold requests that were rejected, by reason"))
	holdsReleased, _ := meter.Int64Counter("reservation.holds.released",
		metric.WithDescription("Seats released voluntarily by their holder"))
	bookingsCommitted, _ := meter.Int64Counter("reservation.bookings.committed",
		metric.WithDescription("Bookings committed"))
	commitsRejected, _ := meter.Int64Counter("reservation.commits.rejected",
		metric.WithDescription("Booking commits that were rejected, by reason"))
	paymentsRecorded, _ := meter.Int64Counter("reservation.payments.recorded",
		metric.WithDescription("Payment outcomes applied to bookings, by status"))
	bookingsCancelled, _ := meter.Int64Counter("reservation.bookings.cancelled",
		metric.WithDescription("Bookings cancelled by an operator"))

	return &metrics{
		holdsGranted:      holdsGranted,
		holdsRejected:     holdsRejected,
		holdsReleased:     holdsReleased,
		bookingsCommitted: bookingsCommitted,
		commitsRejected:   commitsRejected,
		paymentsRecorded:  paymentsRecorded,
		bookingsCancelled: bookingsCancelled,
	}
}

func (m *metrics) recordHold(ctx context.Context, err error) {
	if err == nil {
		m.holdsGranted.Add(ctx, 1)
		return
	}

	m.holdsRejected.Add(ctx, 1, metric.WithAttributes(reasonAttr(err)))
}

func (m *metrics) recordCommit(ctx context.Context, err error) {
	if err == nil {
		m.bookingsCommitted.Add(ctx, 1)
		return
	}

	m.commitsRejected.Add(ctx, 1, metric.WithAttributes(reasonAttr(err)))
}

func (m *metrics) recordPayment(ctx context.Context, status domain.PaymentStatus) {
	m.paymentsRecorded.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(status))))
}

func (m *metrics) recordCancellation(ctx context.Context) {
	m.bookingsCancelled.Add(ctx, 1)
}

func reasonAttr(err error) attribute.KeyValue {
	var rejection *domain.RejectionError
	if errors.As(err, &rejection) {
		return attribute.String("reason", string(rejection.Reason))
	}

	return attribute.String("reason", "error")
}
