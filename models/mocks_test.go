package models

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/store"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

func init() {
	logger.IsTest = true
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) SaveUser(ctx context.Context, user *types.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserStore) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserStore) ListUsers(ctx context.Context) ([]*types.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.User), args.Error(1)
}

func (m *MockUserStore) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTravellerStore struct {
	mock.Mock
}

func (m *MockTravellerStore) SaveTraveller(ctx context.Context, traveller *types.Traveller) error {
	args := m.Called(ctx, traveller)
	return args.Error(0)
}

func (m *MockTravellerStore) GetTraveller(ctx context.Context, id string) (*types.Traveller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Traveller), args.Error(1)
}

func (m *MockTravellerStore) ListTravellers(ctx context.Context) ([]*types.Traveller, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Traveller), args.Error(1)
}

func (m *MockTravellerStore) DeleteTraveller(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTripStore struct {
	mock.Mock
}

func (m *MockTripStore) SaveTrip(ctx context.Context, trip *types.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripStore) GetTrip(ctx context.Context, id string) (*types.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Trip), args.Error(1)
}

func (m *MockTripStore) ListTrips(ctx context.Context) ([]*types.Trip, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Trip), args.Error(1)
}

func (m *MockTripStore) DeleteTrip(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockInvoiceStore struct {
	mock.Mock
}

func (m *MockInvoiceStore) SaveInvoice(ctx context.Context, invoice *types.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceStore) GetInvoice(ctx context.Context, id string) (*types.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Invoice), args.Error(1)
}

func (m *MockInvoiceStore) ListInvoices(ctx context.Context) ([]*types.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Invoice), args.Error(1)
}

func (m *MockInvoiceStore) DeleteInvoice(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Verify interface compliance
var (
	_ store.UserStore      = (*MockUserStore)(nil)
	_ store.TravellerStore = (*MockTravellerStore)(nil)
	_ store.TripStore      = (*MockTripStore)(nil)
	_ store.InvoiceStore   = (*MockInvoiceStore)(nil)
)
