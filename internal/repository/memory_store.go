package repository

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
)

type holdKey struct {
	scheduleID int
	seatID     string
}

type memoryState struct {
	schedules map[int]domain.Schedule
	screens   map[int]domain.ScreenSeats
	prices    map[int]domain.PriceList
	holds     map[holdKey]domain.Hold
	bookings  map[uuid.UUID]domain.Booking
}

func (s *memoryState) clone() *memoryState {
	return &memoryState{
		schedules: maps.Clone(s.schedules),
		screens:   maps.Clone(s.screens),
		prices:    maps.Clone(s.prices),
		holds:     maps.Clone(s.holds),
		bookings:  maps.Clone(s.bookings),
	}
}

// MemoryStore is a process-local domain.Store. Transactions are serialized
// by a single mutex and roll back by restoring a copy of the state taken when
// they began. Values are copied in and out, so callers never share memory
// with the store.
type MemoryStore struct {
	mu    sync.Mutex
	state *memoryState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: &memoryState{
			schedules: make(map[int]domain.Schedule),
			screens:   make(map[int]domain.ScreenSeats),
			prices:    make(map[int]domain.PriceList),
			holds:     make(map[holdKey]domain.Hold),
			bookings:  make(map[uuid.UUID]domain.Booking),
		},
	}
}

func (m *MemoryStore) AddScreen(screen domain.ScreenSeats) {
	m.mu.Lock()
	defer m.mu.Unlock()

	screen.Seats = slices.Clone(screen.Seats)
	m.state.screens[screen.ScreenID] = screen
}

func (m *MemoryStore) AddSchedule(schedule domain.Schedule) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.schedules[schedule.ID] = schedule
}

func (m *MemoryStore) SetPriceList(theatreID int, prices domain.PriceList) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.prices[theatreID] = maps.Clone(prices)
}

func (m *MemoryStore) RunInTx(ctx context.Context, fn func(uow domain.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.state.clone()
	committed := false

	defer func() {
		if !committed {
			m.state = snapshot
		}
	}()

	err := fn(memoryUnitOfWork{store: m, lock: noLock})
	committed = err == nil

	return err
}

func (m *MemoryStore) Catalog() domain.CatalogRepository {
	return memoryUnitOfWork{store: m, lock: m.lock}.Catalog()
}

func (m *MemoryStore) Holds() domain.HoldRepository {
	return memoryUnitOfWork{store: m, lock: m.lock}.Holds()
}

func (m *MemoryStore) Bookings() domain.BookingRepository {
	return memoryUnitOfWork{store: m, lock: m.lock}.Bookings()
}

func (m *MemoryStore) lock() func() {
	m.mu.Lock()
	return m.mu.Unlock
}

func noLock() func() {
	return func() {}
}

type memoryUnitOfWork struct {
	store *MemoryStore
	lock  func() func()
}

func (u memoryUnitOfWork) Catalog() domain.CatalogRepository {
	return &memoryCatalogRepository{u}
}

func (u memoryUnitOfWork) Holds() domain.HoldRepository {
	return &memoryHoldRepository{u}
}

func (u memoryUnitOfWork) Bookings() domain.BookingRepository {
	return &memoryBookingRepository{u}
}

type memoryCatalogRepository struct {
	memoryUnitOfWork
}

func (r *memoryCatalogRepository) GetSchedule(ctx context.Context, scheduleID int) (*domain.Schedule, error) {
	defer r.lock()()

	schedule, ok := r.store.state.schedules[scheduleID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	if screen, ok := r.store.state.screens[schedule.ScreenID]; ok {
		schedule.TheatreID = screen.TheatreID
	}

	return &schedule, nil
}

func (r *memoryCatalogRepository) GetScreenSeats(ctx context.Context, screenID int) (*domain.ScreenSeats, error) {
	defer r.lock()()

	screen, ok := r.store.state.screens[screenID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	screen.Seats = slices.Clone(screen.Seats)

	return &screen, nil
}

func (r *memoryCatalogRepository) GetPriceList(ctx context.Context, theatreID int) (domain.PriceList, error) {
	defer r.lock()()

	prices := maps.Clone(r.store.state.prices[theatreID])
	if prices == nil {
		prices = make(domain.PriceList)
	}

	return prices, nil
}

func (r *memoryCatalogRepository) GetEndedActiveSchedules(ctx context.Context, now time.Time) ([]int, error) {
	defer r.lock()()

	ids := make([]int, 0)
	for id, schedule := range r.store.state.schedules {
		if schedule.IsActive() && !schedule.EndTime.After(now) {
			ids = append(ids, id)
		}
	}

	slices.Sort(ids)

	return ids, nil
}

func (r *memoryCatalogRepository) DeactivateSchedule(ctx context.Context, scheduleID int, now time.Time) (bool, error) {
	defer r.lock()()

	schedule, ok := r.store.state.schedules[scheduleID]
	if !ok || !schedule.IsActive() {
		return false, nil
	}

	schedule.Status = domain.ScheduleStatusInactive
	r.store.state.schedules[scheduleID] = schedule

	return true, nil
}

type memoryHoldRepository struct {
	memoryUnitOfWork
}

func (r *memoryHoldRepository) PurgeExpired(ctx context.Context, scheduleID int, seatIDs []string, now time.Time) error {
	defer r.lock()()

	for _, seatID := range seatIDs {
		key := holdKey{scheduleID, seatID}
		if hold, ok := r.store.state.holds[key]; ok && !hold.ActiveAt(now) {
			delete(r.store.state.holds, key)
		}
	}

	return nil
}

func (r *memoryHoldRepository) Upsert(ctx context.Context, holds []domain.Hold) ([]string, error) {
	defer r.lock()()

	written := make([]string, 0, len(holds))

	for _, hold := range holds {
		key := holdKey{hold.ScheduleID, hold.SeatID}

		existing, ok := r.store.state.holds[key]
		if !ok {
			r.store.state.holds[key] = hold
			written = append(written, hold.SeatID)
			continue
		}

		if existing.HolderID == hold.HolderID {
			existing.ExpiresAt = hold.ExpiresAt
			r.store.state.holds[key] = existing
			written = append(written, hold.SeatID)
		}
	}

	return written, nil
}

func (r *memoryHoldRepository) LockActiveByHolder(
	ctx context.Context,
	scheduleID,
	holderID int,
	seatIDs []string,
	now time.Time) ([]domain.Hold, error) {

	defer r.lock()()

	holds := make([]domain.Hold, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		hold, ok := r.store.state.holds[holdKey{scheduleID, seatID}]
		if ok && hold.HolderID == holderID && hold.ActiveAt(now) {
			holds = append(holds, hold)
		}
	}

	sortHolds(holds)

	return holds, nil
}

func (r *memoryHoldRepository) GetActiveBySchedule(ctx context.Context, scheduleID int, now time.Time) ([]domain.Hold, error) {
	defer r.lock()()

	holds := make([]domain.Hold, 0)
	for key, hold := range r.store.state.holds {
		if key.scheduleID == scheduleID && hold.ActiveAt(now) {
			holds = append(holds, hold)
		}
	}

	sortHolds(holds)

	return holds, nil
}

func (r *memoryHoldRepository) DeleteByHolder(ctx context.Context, scheduleID, holderID int, seatIDs []string) (int64, error) {
	defer r.lock()()

	var deleted int64
	for _, seatID := range seatIDs {
		key := holdKey{scheduleID, seatID}
		if hold, ok := r.store.state.holds[key]; ok && hold.HolderID == holderID {
			delete(r.store.state.holds, key)
			deleted++
		}
	}

	return deleted, nil
}

func (r *memoryHoldRepository) GetSchedulesWithExpired(ctx context.Context, now time.Time) ([]int, error) {
	defer r.lock()()

	seen := make(map[int]struct{})
	for key, hold := range r.store.state.holds {
		if !hold.ActiveAt(now) {
			seen[key.scheduleID] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen)), nil
}

func (r *memoryHoldRepository) DeleteExpired(ctx context.Context, scheduleID int, now time.Time) (int64, error) {
	defer r.lock()()

	var deleted int64
	for key, hold := range r.store.state.holds {
		if key.scheduleID == scheduleID && !hold.ActiveAt(now) {
			delete(r.store.state.holds, key)
			deleted++
		}
	}

	return deleted, nil
}

func sortHolds(holds []domain.Hold) {
	slices.SortFunc(holds, func(a, b domain.Hold) int {
		return cmp.Or(cmp.Compare(a.ScheduleID, b.ScheduleID), cmp.Compare(a.SeatID, b.SeatID))
	})
}

type memoryBookingRepository struct {
	memoryUnitOfWork
}

// Create rejects a confirmed booking that shares a seat with another
// confirmed booking of the schedule, like the unique seat index does.
func (r *memoryBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	defer r.lock()()

	if booking.IsConfirmed() {
		taken := r.bookedSeats(booking.ScheduleID, booking.ID)
		for _, seat := range booking.Seats {
			if _, ok := taken[seat.SeatID]; ok {
				return domain.ErrSeatConflict
			}
		}
	}

	stored := *booking
	stored.Seats = slices.Clone(booking.Seats)
	r.store.state.bookings[booking.ID] = stored

	return nil
}

func (r *memoryBookingRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	defer r.lock()()

	return r.get(id)
}

func (r *memoryBookingRepository) GetByIdForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	defer r.lock()()

	return r.get(id)
}

func (r *memoryBookingRepository) get(id uuid.UUID) (*domain.Booking, error) {
	booking, ok := r.store.state.bookings[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	booking.Seats = slices.Clone(booking.Seats)

	return &booking, nil
}

func (r *memoryBookingRepository) GetByHolder(
	ctx context.Context,
	holderID int,
	pagination domain.Pagination) ([]domain.Booking, *domain.Metadata, error) {

	defer r.lock()()

	all := make([]domain.Booking, 0)
	for _, booking := range r.store.state.bookings {
		if booking.HolderID == holderID {
			booking.Seats = slices.Clone(booking.Seats)
			all = append(all, booking)
		}
	}

	slices.SortFunc(all, func(a, b domain.Booking) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID.String(), b.ID.String()))
	})

	start := min(pagination.Offset(), len(all))
	end := min(start+pagination.Limit(), len(all))

	return all[start:end], pagination.Describe(len(all)), nil
}

func (r *memoryBookingRepository) GetBookedSeats(ctx context.Context, scheduleID int, seatIDs []string) ([]domain.BookedSeat, error) {
	defer r.lock()()

	var filter map[string]struct{}
	if len(seatIDs) > 0 {
		filter = make(map[string]struct{}, len(seatIDs))
		for _, seatID := range seatIDs {
			filter[seatID] = struct{}{}
		}
	}

	booked := make([]domain.BookedSeat, 0)
	for _, booking := range r.store.state.bookings {
		if booking.ScheduleID != scheduleID || !booking.IsConfirmed() {
			continue
		}

		for _, seat := range booking.Seats {
			if _, ok := filter[seat.SeatID]; filter != nil && !ok {
				continue
			}

			booked = append(booked, domain.BookedSeat{BookingID: booking.ID, SeatID: seat.SeatID})
		}
	}

	slices.SortFunc(booked, func(a, b domain.BookedSeat) int {
		return cmp.Compare(a.SeatID, b.SeatID)
	})

	return booked, nil
}

func (r *memoryBookingRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	bookingStatus domain.BookingStatus,
	paymentStatus domain.PaymentStatus,
	now time.Time) error {

	defer r.lock()()

	booking, ok := r.store.state.bookings[id]
	if !ok {
		return domain.ErrRecordNotFound
	}

	if bookingStatus == domain.BookingStatusConfirmed && !booking.IsConfirmed() {
		taken := r.bookedSeats(booking.ScheduleID, booking.ID)
		for _, seat := range booking.Seats {
			if _, ok := taken[seat.SeatID]; ok {
				return domain.ErrSeatConflict
			}
		}
	}

	booking.BookingStatus = bookingStatus
	booking.PaymentStatus = paymentStatus
	booking.UpdatedAt = now
	r.store.state.bookings[id] = booking

	return nil
}

func (r *memoryBookingRepository) GetStaleUnpaid(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	defer r.lock()()

	stale := make([]domain.Booking, 0)
	for _, booking := range r.store.state.bookings {
		if booking.IsStaleUnpaid(cutoff) {
			stale = append(stale, booking)
		}
	}

	slices.SortFunc(stale, func(a, b domain.Booking) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	ids := make([]uuid.UUID, len(stale))
	for i, booking := range stale {
		ids[i] = booking.ID
	}

	return ids, nil
}

// bookedSeats returns the seats of the schedule's confirmed bookings other
// than the excluded one.
func (r *memoryBookingRepository) bookedSeats(scheduleID int, exclude uuid.UUID) map[string]struct{} {
	taken := make(map[string]struct{})
	for _, other := range r.store.state.bookings {
		if other.ID == exclude || other.ScheduleID != scheduleID || !other.IsConfirmed() {
			continue
		}

		for _, seat := range other.Seats {
			taken[seat.SeatID] = struct{}{}
		}
	}

	return taken
}
