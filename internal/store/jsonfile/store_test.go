package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/config"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/store"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

func init() {
	logger.IsTest = true
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(config.StorageConfig{
		DataDir:        t.TempDir(),
		UsersFile:      "users.json",
		TravellersFile: "travellers.json",
		TripsFile:      "trips.json",
		InvoicesFile:   "invoices.json",
	})
	require.NoError(t, err)
	return s
}

func TestMissingFilesAreEmptyCollections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	trips, err := s.ListTrips(ctx)
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestCorruptFileIsTreatedAsEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(s.travellersPath, []byte("{not json"), 0o644))

	travellers, err := s.ListTravellers(ctx)
	require.NoError(t, err)
	assert.Empty(t, travellers)
}

func TestMalformedRecordIsSkippedNotFatal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	raw := `[
        {"traveller_id": "t-good", "name": "Ada Price", "address": "12 Quay St",
         "date_of_birth": "1988-04-02", "emergency_contact": "07700 900123", "government_id": "GB1"},
        {"traveller_id": "t-bad", "name": "Broken", "date_of_birth": "not-a-date"}
    ]`
	require.NoError(t, os.WriteFile(s.travellersPath, []byte(raw), 0o644))

	travellers, err := s.ListTravellers(ctx)
	require.NoError(t, err)
	require.Len(t, travellers, 1)
	assert.Equal(t, "t-good", travellers[0].ID)
}

func TestUserRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := &types.User{ID: "u-1", Username: "vsmith", Name: "Vera Smith", Role: types.RoleManager}
	require.NoError(t, user.HashPassword("secret-pass"))
	require.NoError(t, s.SaveUser(ctx, user))

	loaded, err := s.GetUserByUsername(ctx, "vsmith")
	require.NoError(t, err)
	assert.Equal(t, "u-1", loaded.ID)
	assert.Equal(t, types.RoleManager, loaded.Role)
	assert.True(t, types.CheckPassword("secret-pass", loaded.PasswordHash))

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSaveUserUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := &types.User{ID: "u-1", Username: "vsmith", Name: "Vera Smith", Role: types.RoleManager}
	require.NoError(t, s.SaveUser(ctx, user))

	user.Name = "Vera Smith-Jones"
	require.NoError(t, s.SaveUser(ctx, user))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Vera Smith-Jones", users[0].Name)
}

func TestTripRoundTripWithLegsAndTravellers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	coordinator := &types.User{ID: "u-coord", Username: "coord", Name: "Cora Day", Role: types.RoleCoordinator}
	require.NoError(t, s.SaveUser(ctx, coordinator))

	dob := time.Date(1995, 2, 10, 0, 0, 0, 0, time.UTC)
	for _, traveller := range []*types.Traveller{
		{ID: "t-1", Name: "Ada Price", DateOfBirth: dob},
		{ID: "t-2", Name: "Ben Cole", DateOfBirth: dob},
	} {
		require.NoError(t, s.SaveTraveller(ctx, traveller))
	}

	trip := &types.Trip{
		ID:           "tr-1",
		Name:         "South Coast Tour",
		StartDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		DurationDays: 7,
		Coordinator:  types.ResolvedRef(coordinator.ID, coordinator),
		TravellerIDs: []string{"t-1", "t-2"},
		Legs: []types.TripLeg{
			{ID: "lg-1", Sequence: 1, StartLocation: "Southampton", Destination: "Portsmouth",
				Provider: "South Rail", Mode: types.TransportTrain, Type: types.LegTransfer,
				Cost: decimal.NewFromFloat(15.50)},
			{ID: "lg-2", Sequence: 2, StartLocation: "Portsmouth", Destination: "Brighton",
				Provider: "Coastline", Mode: types.TransportBus, Type: types.LegTransfer,
				Cost: decimal.NewFromFloat(9.75)},
			{ID: "lg-3", Sequence: 3, StartLocation: "Brighton", Destination: "Brighton",
				Provider: "Seafront Hotel", Mode: types.TransportTaxi, Type: types.LegAccommodation,
				Cost: decimal.NewFromInt(120)},
		},
		IsActive: true,
	}
	require.NoError(t, s.SaveTrip(ctx, trip))

	loaded, err := s.GetTrip(ctx, "tr-1")
	require.NoError(t, err)
	assert.Equal(t, "South Coast Tour", loaded.Name)
	assert.Equal(t, 7, loaded.DurationDays)
	require.Len(t, loaded.Legs, 3)
	assert.True(t, loaded.TotalLegCost().Equal(decimal.NewFromFloat(145.25)))

	require.True(t, loaded.Coordinator.Resolved())
	assert.Equal(t, "Cora Day", loaded.Coordinator.Value.Name)

	assert.Equal(t, []string{"t-1", "t-2"}, loaded.TravellerIDs)
	require.Len(t, loaded.Travellers, 2)
}

func TestTripWithMissingCoordinatorLoadsUnresolved(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	coordinator := &types.User{ID: "u-gone", Username: "gone", Role: types.RoleCoordinator}
	trip := &types.Trip{
		ID:           "tr-1",
		Name:         "Orphan Coordinator",
		StartDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		DurationDays: 3,
		Coordinator:  types.ResolvedRef(coordinator.ID, coordinator),
		IsActive:     true,
	}
	// The coordinator was never saved to the user collection.
	require.NoError(t, s.SaveTrip(ctx, trip))

	loaded, err := s.GetTrip(ctx, "tr-1")
	require.NoError(t, err)
	assert.False(t, loaded.Coordinator.Resolved())
	assert.Equal(t, "u-gone", loaded.Coordinator.ID)
}

func TestDeleteTravellerCascadesToTripAssignments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	dob := time.Date(1995, 2, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveTraveller(ctx, &types.Traveller{ID: "t-1", Name: "Ada Price", DateOfBirth: dob}))
	require.NoError(t, s.SaveTraveller(ctx, &types.Traveller{ID: "t-2", Name: "Ben Cole", DateOfBirth: dob}))

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveTrip(ctx, &types.Trip{
		ID: "tr-1", Name: "First", StartDate: start, DurationDays: 2,
		TravellerIDs: []string{"t-1", "t-2"}, IsActive: true,
	}))
	require.NoError(t, s.SaveTrip(ctx, &types.Trip{
		ID: "tr-2", Name: "Second", StartDate: start, DurationDays: 2,
		TravellerIDs: []string{"t-1"}, IsActive: true,
	}))

	require.NoError(t, s.DeleteTraveller(ctx, "t-1"))

	first, err := s.GetTrip(ctx, "tr-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t-2"}, first.TravellerIDs)

	second, err := s.GetTrip(ctx, "tr-2")
	require.NoError(t, err)
	assert.Empty(t, second.TravellerIDs)

	_, err = s.GetTraveller(ctx, "t-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteTripLeavesInvoicesAsSkippedOrphans(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveTrip(ctx, &types.Trip{
		ID: "tr-1", Name: "Doomed", StartDate: start, DurationDays: 2, IsActive: true,
	}))

	invoice := &types.Invoice{
		ID:          "inv-1",
		TripID:      "tr-1",
		IssueDate:   time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		TotalAmount: decimal.NewFromInt(300),
		Status:      types.InvoicePending,
		Payments: []types.Payment{
			{ID: "pay-1", InvoiceID: "inv-1", Amount: decimal.NewFromInt(100),
				Date: time.Date(2026, 8, 5, 9, 0, 0, 0, time.UTC), Method: "Card"},
		},
	}
	require.NoError(t, s.SaveInvoice(ctx, invoice))

	invoices, err := s.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.True(t, invoices[0].Balance().Equal(decimal.NewFromInt(200)))

	require.NoError(t, s.DeleteTrip(ctx, "tr-1"))

	// The invoice record stays on disk but is skipped on load.
	invoices, err = s.ListInvoices(ctx)
	require.NoError(t, err)
	assert.Empty(t, invoices)

	data, err := os.ReadFile(s.invoicesPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "inv-1")
}

func TestInvoiceRoundTripResolvesTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveTrip(ctx, &types.Trip{
		ID: "tr-1", Name: "Billed Trip", StartDate: start, DurationDays: 2, IsActive: true,
	}))
	require.NoError(t, s.SaveInvoice(ctx, &types.Invoice{
		ID: "inv-1", TripID: "tr-1",
		IssueDate:   time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		TotalAmount: decimal.NewFromInt(50),
		Status:      types.InvoicePaid,
	}))

	loaded, err := s.GetInvoice(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, types.InvoicePaid, loaded.Status)
	require.True(t, loaded.Trip.Resolved())
	assert.Equal(t, "Billed Trip", loaded.Trip.Value.Name)
}

func TestLegacyDataFilesLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Shape written by earlier versions: full timestamps and numeric costs.
	raw := `[
        {"trip_id": "TR20250101120000", "name": "Legacy Trip",
         "start_date": "2025-06-01T00:00:00", "duration_days": 4,
         "coordinator_id": null, "traveller_ids": [],
         "trip_legs": [
            {"leg_id": "LG1", "sequence": 1, "start_location": "A", "destination": "B",
             "transport_provider": "P", "transport_mode": "Train", "leg_type": "Transfer Point",
             "cost": 25.5, "description": ""}
         ],
         "is_active": true}
    ]`
	require.NoError(t, os.WriteFile(s.tripsPath, []byte(raw), 0o644))

	trip, err := s.GetTrip(ctx, "TR20250101120000")
	require.NoError(t, err)
	assert.Equal(t, "Legacy Trip", trip.Name)
	assert.True(t, trip.Coordinator.IsZero())
	require.Len(t, trip.Legs, 1)
	assert.True(t, trip.Legs[0].Cost.Equal(decimal.NewFromFloat(25.5)))
	assert.Equal(t, types.TransportTrain, trip.Legs[0].Mode)
}

func TestWrittenFilesAreIndented(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveUser(ctx, &types.User{ID: "u-1", Username: "vsmith", Role: types.RoleManager}))

	data, err := os.ReadFile(filepath.Join(filepath.Dir(s.usersPath), "users.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    ")
}
