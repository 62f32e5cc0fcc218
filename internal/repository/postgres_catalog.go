package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/shopspring/decimal"
)

type PostgresCatalogRepository struct {
	db dbtx
}

func NewPostgresCatalogRepository(db dbtx) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		db: db,
	}
}

func (p *PostgresCatalogRepository) GetSchedule(ctx context.Context, scheduleID int) (*domain.Schedule, error) {
	query := `
		SELECT s.id, s.screen_id, COALESCE(sc.theatre_id, 0), s.start_time, s.end_time, s.status
		FROM schedules s
		LEFT JOIN screens sc ON s.screen_id = sc.id
		WHERE s.id = $1
	`

	var schedule domain.Schedule

	err := p.db.QueryRow(ctx, query, scheduleID).Scan(
		&schedule.ID,
		&schedule.ScreenID,
		&schedule.TheatreID,
		&schedule.StartTime,
		&schedule.EndTime,
		&schedule.Status,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &schedule, nil
}

func (p *PostgresCatalogRepository) GetScreenSeats(ctx context.Context, screenID int) (*domain.ScreenSeats, error) {
	screenSeats := domain.ScreenSeats{ScreenID: screenID}

	err := p.db.QueryRow(ctx, `SELECT theatre_id FROM screens WHERE id = $1`, screenID).Scan(&screenSeats.TheatreID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	query := `
		SELECT seat_id, seat_row, seat_number, tier
		FROM screen_seats
		WHERE screen_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := p.db.Query(ctx, query, screenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screenSeats.Seats = make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err := rows.Scan(&seat.ID, &seat.Row, &seat.Number, &seat.Tier)
		if err != nil {
			return nil, err
		}

		screenSeats.Seats = append(screenSeats.Seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &screenSeats, nil
}

func (p *PostgresCatalogRepository) GetPriceList(ctx context.Context, theatreID int) (domain.PriceList, error) {
	rows, err := p.db.Query(ctx, `SELECT tier, price FROM theatre_seat_prices WHERE theatre_id = $1`, theatreID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make(domain.PriceList)

	for rows.Next() {
		var (
			tier  domain.SeatTier
			price decimal.Decimal
		)

		if err := rows.Scan(&tier, &price); err != nil {
			return nil, err
		}

		prices[tier] = price
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return prices, nil
}

func (p *PostgresCatalogRepository) GetEndedActiveSchedules(ctx context.Context, now time.Time) ([]int, error) {
	query := `
		SELECT id
		FROM schedules
		WHERE status = 'active' AND end_time <= $1
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[int])
}

func (p *PostgresCatalogRepository) DeactivateSchedule(ctx context.Context, scheduleID int, now time.Time) (bool, error) {
	query := `
		UPDATE schedules
		SET status = 'inactive', updated_at = $2
		WHERE id = $1 AND status = 'active'
	`

	tag, err := p.db.Exec(ctx, query, scheduleID, now)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}
