package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
)

type PostgresBookingRepository struct {
	db dbtx
}

func NewPostgresBookingRepository(db dbtx) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Create inserts the booking and its seats. A seat already taken by another
// confirmed booking of the schedule trips the partial unique index and is
// reported as domain.ErrSeatConflict.
func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, holder_id, schedule_id, total_amount, booking_status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := p.db.Exec(
		ctx,
		query,
		booking.ID,
		booking.HolderID,
		booking.ScheduleID,
		booking.TotalAmount,
		booking.BookingStatus,
		booking.PaymentStatus,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return err
	}

	var (
		seatIDs  = make([]string, len(booking.Seats))
		seatRows = make([]string, len(booking.Seats))
		numbers  = make([]int, len(booking.Seats))
		tiers    = make([]string, len(booking.Seats))
		prices   = make([]string, len(booking.Seats))
	)

	for i, seat := range booking.Seats {
		seatIDs[i] = seat.SeatID
		seatRows[i] = seat.Row
		numbers[i] = seat.Number
		tiers[i] = string(seat.Tier)
		prices[i] = seat.Price.String()
	}

	query = `
		INSERT INTO booking_seats (booking_id, schedule_id, seat_id, seat_row, seat_number, tier, price, active)
		SELECT $1, $2, seat_id, seat_row, seat_number, tier, price::numeric, $3
		FROM unnest($4::text[], $5::text[], $6::int[], $7::text[], $8::text[])
			AS s(seat_id, seat_row, seat_number, tier, price)
		ORDER BY seat_id
	`

	_, err = p.db.Exec(
		ctx,
		query,
		booking.ID,
		booking.ScheduleID,
		booking.IsConfirmed(),
		seatIDs,
		seatRows,
		numbers,
		tiers,
		prices,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrSeatConflict
		}

		return err
	}

	return nil
}

func (p *PostgresBookingRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return p.get(ctx, id, false)
}

func (p *PostgresBookingRepository) GetByIdForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return p.get(ctx, id, true)
}

func (p *PostgresBookingRepository) get(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Booking, error) {
	query := `
		SELECT id, holder_id, schedule_id, total_amount, booking_status, payment_status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	if forUpdate {
		query += " FOR UPDATE"
	}

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.HolderID,
		&booking.ScheduleID,
		&booking.TotalAmount,
		&booking.BookingStatus,
		&booking.PaymentStatus,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	seats, err := p.retrieveBookingSeats(ctx, []uuid.UUID{booking.ID})
	if err != nil {
		return nil, err
	}

	booking.Seats = seats[booking.ID]

	return &booking, nil
}

func (p *PostgresBookingRepository) GetByHolder(
	ctx context.Context,
	holderID int,
	pagination domain.Pagination) ([]domain.Booking, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			id,
			holder_id,
			schedule_id,
			total_amount,
			booking_status,
			payment_status,
			created_at,
			updated_at
		FROM bookings
		WHERE holder_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, holderID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	totalRecords := 0

	for rows.Next() {
		var booking domain.Booking

		err := rows.Scan(
			&totalRecords,
			&booking.ID,
			&booking.HolderID,
			&booking.ScheduleID,
			&booking.TotalAmount,
			&booking.BookingStatus,
			&booking.PaymentStatus,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	ids := make([]uuid.UUID, len(bookings))
	for i, booking := range bookings {
		ids[i] = booking.ID
	}

	seats, err := p.retrieveBookingSeats(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	for i := range bookings {
		bookings[i].Seats = seats[bookings[i].ID]
	}

	metadata := pagination.Describe(totalRecords)

	return bookings, metadata, nil
}

func (p *PostgresBookingRepository) GetBookedSeats(
	ctx context.Context,
	scheduleID int,
	seatIDs []string) ([]domain.BookedSeat, error) {

	query := `
		SELECT booking_id, seat_id
		FROM booking_seats
		WHERE schedule_id = $1 AND active AND (cardinality($2::text[]) = 0 OR seat_id = ANY($2))
		ORDER BY seat_id
	`

	if seatIDs == nil {
		seatIDs = []string{}
	}

	rows, err := p.db.Query(ctx, query, scheduleID, seatIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	booked := make([]domain.BookedSeat, 0)

	for rows.Next() {
		var seat domain.BookedSeat

		if err := rows.Scan(&seat.BookingID, &seat.SeatID); err != nil {
			return nil, err
		}

		booked = append(booked, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return booked, nil
}

// UpdateStatus changes both statuses of a booking. Seats of a booking that is
// no longer confirmed stop counting against the unique seat index.
func (p *PostgresBookingRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	bookingStatus domain.BookingStatus,
	paymentStatus domain.PaymentStatus,
	now time.Time) error {

	query := `
		UPDATE bookings
		SET booking_status = $2, payment_status = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := p.db.Exec(ctx, query, id, bookingStatus, paymentStatus, now)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	_, err = p.db.Exec(
		ctx,
		`UPDATE booking_seats SET active = $2 WHERE booking_id = $1`,
		id,
		bookingStatus == domain.BookingStatusConfirmed,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrSeatConflict
		}

		return err
	}

	return nil
}

func (p *PostgresBookingRepository) GetStaleUnpaid(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	query := `
		SELECT id
		FROM bookings
		WHERE booking_status = 'confirmed' AND payment_status = 'pending' AND created_at <= $1
		ORDER BY created_at
	`

	rows, err := p.db.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

func (p *PostgresBookingRepository) retrieveBookingSeats(
	ctx context.Context,
	bookingIDs []uuid.UUID) (map[uuid.UUID][]domain.BookingSeat, error) {

	seats := make(map[uuid.UUID][]domain.BookingSeat, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return seats, nil
	}

	query := `
		SELECT booking_id, seat_id, seat_row, seat_number, tier, price
		FROM booking_seats
		WHERE booking_id = ANY($1)
		ORDER BY booking_id, seat_id
	`

	rows, err := p.db.Query(ctx, query, bookingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bookingID uuid.UUID
			seat      domain.BookingSeat
		)

		err := rows.Scan(
			&bookingID,
			&seat.SeatID,
			&seat.Row,
			&seat.Number,
			&seat.Tier,
			&seat.Price,
		)
		if err != nil {
			return nil, err
		}

		seats[bookingID] = append(seats[bookingID], seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
