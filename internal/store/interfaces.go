package store

import (
	"context"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

// Store provides a unified interface for all data operations. Each collection
// is independent; saves are not transactional across collections.
type Store interface {
	User() UserStore
	Traveller() TravellerStore
	Trip() TripStore
	Invoice() InvoiceStore
}

// UserStore handles user-related data operations
type UserStore interface {
	SaveUser(ctx context.Context, user *types.User) error
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)
	ListUsers(ctx context.Context) ([]*types.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// TravellerStore handles traveller-related data operations
type TravellerStore interface {
	SaveTraveller(ctx context.Context, traveller *types.Traveller) error
	GetTraveller(ctx context.Context, id string) (*types.Traveller, error)
	ListTravellers(ctx context.Context) ([]*types.Traveller, error)
	// DeleteTraveller removes the record and strips its ID from every trip's
	// assignment list (cascade).
	DeleteTraveller(ctx context.Context, id string) error
}

// TripStore handles trip-related data operations. Loaded trips have their
// coordinator and traveller references resolved against the user and
// traveller collections.
type TripStore interface {
	SaveTrip(ctx context.Context, trip *types.Trip) error
	GetTrip(ctx context.Context, id string) (*types.Trip, error)
	ListTrips(ctx context.Context) ([]*types.Trip, error)
	// DeleteTrip is a hard remove. It does not cascade to invoices: orphaned
	// invoice references are tolerated and skipped on invoice load.
	DeleteTrip(ctx context.Context, id string) error
}

// InvoiceStore handles invoice-related data operations. Invoices whose trip
// no longer exists are skipped on load.
type InvoiceStore interface {
	SaveInvoice(ctx context.Context, invoice *types.Invoice) error
	GetInvoice(ctx context.Context, id string) (*types.Invoice, error)
	ListInvoices(ctx context.Context) ([]*types.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
}
