package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
)

type PostgresHoldRepository struct {
	db dbtx
}

func NewPostgresHoldRepository(db dbtx) *PostgresHoldRepository {
	return &PostgresHoldRepository{
		db: db,
	}
}

func (p *PostgresHoldRepository) PurgeExpired(
	ctx context.Context,
	scheduleID int,
	seatIDs []string,
	now time.Time) error {

	query := `
		DELETE FROM seat_holds
		WHERE schedule_id = $1 AND seat_id = ANY($2) AND expires_at <= $3
	`

	_, err := p.db.Exec(ctx, query, scheduleID, seatIDs, now)
	return err
}

// Upsert lets the primary key on (schedule_id, seat_id) arbitrate between
// concurrent holders: a conflicting row is only updated when it belongs to the
// same holder, so seats held by others are missing from the returned IDs.
// Rows are inserted in seat order to keep lock acquisition consistent.
func (p *PostgresHoldRepository) Upsert(ctx context.Context, holds []domain.Hold) ([]string, error) {
	if len(holds) == 0 {
		return []string{}, nil
	}

	var (
		scheduleIDs = make([]int, len(holds))
		seatIDs     = make([]string, len(holds))
		holderIDs   = make([]int, len(holds))
		expiresAt   = make([]time.Time, len(holds))
		createdAt   = make([]time.Time, len(holds))
	)

	for i, hold := range holds {
		scheduleIDs[i] = hold.ScheduleID
		seatIDs[i] = hold.SeatID
		holderIDs[i] = hold.HolderID
		expiresAt[i] = hold.ExpiresAt
		createdAt[i] = hold.CreatedAt
	}

	query := `
		INSERT INTO seat_holds (schedule_id, seat_id, holder_id, expires_at, created_at)
		SELECT schedule_id, seat_id, holder_id, expires_at, created_at
		FROM unnest($1::int[], $2::text[], $3::int[], $4::timestamptz[], $5::timestamptz[])
			AS h(schedule_id, seat_id, holder_id, expires_at, created_at)
		ORDER BY schedule_id, seat_id
		ON CONFLICT (schedule_id, seat_id) DO UPDATE
		SET expires_at = EXCLUDED.expires_at
		WHERE seat_holds.holder_id = EXCLUDED.holder_id
		RETURNING seat_id
	`

	rows, err := p.db.Query(ctx, query, scheduleIDs, seatIDs, holderIDs, expiresAt, createdAt)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (p *PostgresHoldRepository) LockActiveByHolder(
	ctx context.Context,
	scheduleID,
	holderID int,
	seatIDs []string,
	now time.Time) ([]domain.Hold, error) {

	query := `
		SELECT schedule_id, seat_id, holder_id, expires_at, created_at
		FROM seat_holds
		WHERE schedule_id = $1 AND holder_id = $2 AND seat_id = ANY($3) AND expires_at > $4
		ORDER BY seat_id
		FOR UPDATE
	`

	return p.queryHolds(ctx, query, scheduleID, holderID, seatIDs, now)
}

func (p *PostgresHoldRepository) GetActiveBySchedule(
	ctx context.Context,
	scheduleID int,
	now time.Time) ([]domain.Hold, error) {

	query := `
		SELECT schedule_id, seat_id, holder_id, expires_at, created_at
		FROM seat_holds
		WHERE schedule_id = $1 AND expires_at > $2
		ORDER BY seat_id
	`

	return p.queryHolds(ctx, query, scheduleID, now)
}

func (p *PostgresHoldRepository) DeleteByHolder(
	ctx context.Context,
	scheduleID,
	holderID int,
	seatIDs []string) (int64, error) {

	query := `
		DELETE FROM seat_holds
		WHERE schedule_id = $1 AND holder_id = $2 AND seat_id = ANY($3)
	`

	tag, err := p.db.Exec(ctx, query, scheduleID, holderID, seatIDs)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (p *PostgresHoldRepository) GetSchedulesWithExpired(ctx context.Context, now time.Time) ([]int, error) {
	query := `
		SELECT DISTINCT schedule_id
		FROM seat_holds
		WHERE expires_at <= $1
		ORDER BY schedule_id
	`

	rows, err := p.db.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[int])
}

func (p *PostgresHoldRepository) DeleteExpired(ctx context.Context, scheduleID int, now time.Time) (int64, error) {
	tag, err := p.db.Exec(ctx, `DELETE FROM seat_holds WHERE schedule_id = $1 AND expires_at <= $2`, scheduleID, now)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (p *PostgresHoldRepository) queryHolds(ctx context.Context, query string, args ...any) ([]domain.Hold, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holds := make([]domain.Hold, 0)

	for rows.Next() {
		var hold domain.Hold

		err := rows.Scan(
			&hold.ScheduleID,
			&hold.SeatID,
			&hold.HolderID,
			&hold.ExpiresAt,
			&hold.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		holds = append(holds, hold)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return holds, nil
}
