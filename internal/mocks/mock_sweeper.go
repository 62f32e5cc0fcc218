package mocks

import (
	"context"

	"github.com/metinatakli/seat-reservation-engine/internal/payment"
	"github.com/metinatakli/seat-reservation-engine/internal/reaper"
	"github.com/stretchr/testify/mock"
)

type MockSweeper struct {
	mock.Mock
}

func (m *MockSweeper) RunOnce(ctx context.Context) (reaper.SweepReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(reaper.SweepReport), args.Error(1)
}

type MockWebhookParser struct {
	mock.Mock
}

func (m *MockWebhookParser) Parse(payload []byte, signatureHeader string) (*payment.Outcome, error) {
	args := m.Called(payload, signatureHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Outcome), args.Error(1)
}
