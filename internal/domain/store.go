package domain

import "context"

// UnitOfWork groups the repositories that take part in one transaction.
type UnitOfWork interface {
	Catalog() CatalogRepository
	Holds() HoldRepository
	Bookings() BookingRepository
}

// Store is the single authoritative data store. Repositories obtained
// directly from the Store run outside of any transaction.
type Store interface {
	UnitOfWork

	// RunInTx runs fn in one transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(uow UnitOfWork) error) error
}
