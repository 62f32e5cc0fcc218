package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound           = errors.New("record not found")
	ErrSeatConflict             = errors.New("seat(s) are already held or booked")
	ErrHoldMissingOrExpired     = errors.New("your hold on the selected seats is missing or has expired")
	ErrScheduleInactive         = errors.New("schedule is not active")
	ErrEmptySeatSelection       = errors.New("at least one seat must be selected")
	ErrAmountMismatch           = errors.New("amount does not match the price of the selected seats")
	ErrInvalidPaymentTransition = errors.New("payment outcome cannot be applied to the booking in its current state")
	ErrInvariantViolation       = errors.New("invariant violation")
)

type RejectReason string

const (
	ReasonSeatConflict         RejectReason = "seat_conflict"
	ReasonHoldMissingOrExpired RejectReason = "hold_missing_or_expired"
	ReasonScheduleNotFound     RejectReason = "schedule_not_found"
	ReasonScheduleInactive     RejectReason = "schedule_inactive"
	ReasonScreenNotFound       RejectReason = "screen_not_found"
	ReasonSeatNotFound         RejectReason = "seat_not_found"
	ReasonAmountMismatch       RejectReason = "amount_mismatch"
	ReasonEmptySeatSelection   RejectReason = "empty_seat_selection"
)

// RejectionError reports why a hold or commit was refused, together with the
// seats involved. It matches the sentinel of its category with errors.Is.
type RejectionError struct {
	Reason  RejectReason
	SeatIDs []string
}

func Reject(reason RejectReason, seatIDs ...string) *RejectionError {
	return &RejectionError{Reason: reason, SeatIDs: seatIDs}
}

func (e *RejectionError) Error() string {
	if len(e.SeatIDs) == 0 {
		return string(e.Reason)
	}

	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.SeatIDs, ", "))
}

func (e *RejectionError) Is(target error) bool {
	switch e.Reason {
	case ReasonSeatConflict:
		return target == ErrSeatConflict
	case ReasonHoldMissingOrExpired:
		return target == ErrHoldMissingOrExpired
	case ReasonScheduleNotFound, ReasonScreenNotFound, ReasonSeatNotFound:
		return target == ErrRecordNotFound
	case ReasonScheduleInactive:
		return target == ErrScheduleInactive
	case ReasonAmountMismatch:
		return target == ErrAmountMismatch
	case ReasonEmptySeatSelection:
		return target == ErrEmptySeatSelection
	}

	return false
}
