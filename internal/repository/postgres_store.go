package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository
// runs either standalone or inside a transaction.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresStore struct {
	db *pgxpool.Pool
	postgresUnitOfWork
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db:                 db,
		postgresUnitOfWork: newPostgresUnitOfWork(db),
	}
}

func (p *PostgresStore) RunInTx(ctx context.Context, fn func(uow domain.UnitOfWork) error) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		return fn(newPostgresUnitOfWork(tx))
	})
}

type postgresUnitOfWork struct {
	catalog  *PostgresCatalogRepository
	holds    *PostgresHoldRepository
	bookings *PostgresBookingRepository
}

func newPostgresUnitOfWork(db dbtx) postgresUnitOfWork {
	return postgresUnitOfWork{
		catalog:  NewPostgresCatalogRepository(db),
		holds:    NewPostgresHoldRepository(db),
		bookings: NewPostgresBookingRepository(db),
	}
}

func (u postgresUnitOfWork) Catalog() domain.CatalogRepository {
	return u.catalog
}

func (u postgresUnitOfWork) Holds() domain.HoldRepository {
	return u.holds
}

func (u postgresUnitOfWork) Bookings() domain.BookingRepository {
	return u.bookings
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
