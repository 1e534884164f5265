package models

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/errors"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/store"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/utils"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

// TripModel holds the trip business rules: coordinator-only ownership,
// duplicate-free traveller assignment and leg management.
type TripModel struct {
	store          store.TripStore
	travellerStore store.TravellerStore
}

func NewTripModel(store store.TripStore, travellerStore store.TravellerStore) *TripModel {
	return &TripModel{
		store:          store,
		travellerStore: travellerStore,
	}
}

// CreateTrip creates a trip. The creator is attached as coordinator only when
// they hold the Trip Coordinator role; otherwise the trip starts unassigned
// and a coordinator must be attached later.
func (tm *TripModel) CreateTrip(ctx context.Context, creator *types.User, name string, startDate time.Time, durationDays int) (*types.Trip, error) {
	log := logger.GetLogger()

	if err := validateTrip(name, startDate, durationDays); err != nil {
		return nil, err
	}

	trip := &types.Trip{
		ID:           utils.NewRecordID(utils.PrefixTrip),
		Name:         name,
		StartDate:    startDate,
		DurationDays: durationDays,
		TravellerIDs: []string{},
		IsActive:     true,
	}

	if creator != nil && types.CanOwnTrips(creator.Role) {
		trip.Coordinator = types.ResolvedRef(creator.ID, creator)
	} else if creator != nil {
		log.Infow("Trip created without coordinator; only trip coordinators can own trips",
			"creator_role", creator.Role)
	}

	if err := tm.store.SaveTrip(ctx, trip); err != nil {
		return nil, errors.NewStorageError(err)
	}

	log.Infow("Trip created", "trip_id", trip.ID, "name", trip.Name,
		"coordinator_id", trip.Coordinator.ID)
	return trip, nil
}

func (tm *TripModel) GetTripByID(ctx context.Context, id string) (*types.Trip, error) {
	trip, err := tm.store.GetTrip(ctx, id)
	if err != nil {
		return nil, errors.NotFound("Trip", id)
	}
	return trip, nil
}

func (tm *TripModel) UpdateTrip(ctx context.Context, trip *types.Trip) error {
	if err := validateTrip(trip.Name, trip.StartDate, trip.DurationDays); err != nil {
		return err
	}

	if _, err := tm.GetTripByID(ctx, trip.ID); err != nil {
		return err
	}

	if err := tm.store.SaveTrip(ctx, trip); err != nil {
		return errors.NewStorageError(err)
	}
	return nil
}

// DeleteTrip permanently removes the trip. Invoices referencing it are left
// in place: they become orphans and are skipped on invoice load.
func (tm *TripModel) DeleteTrip(ctx context.Context, id string) error {
	if err := tm.store.DeleteTrip(ctx, id); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.NotFound("Trip", id)
		}
		return errors.NewStorageError(err)
	}
	return nil
}

func (tm *TripModel) ListTrips(ctx context.Context) ([]*types.Trip, error) {
	trips, err := tm.store.ListTrips(ctx)
	if err != nil {
		return nil, errors.NewStorageError(err)
	}
	return trips, nil
}

// ListTripsForCoordinator filters trips owned by the given user.
func (tm *TripModel) ListTripsForCoordinator(ctx context.Context, userID string) ([]*types.Trip, error) {
	trips, err := tm.ListTrips(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]*types.Trip, 0, len(trips))
	for _, trip := range trips {
		if trip.Coordinator.ID == userID {
			owned = append(owned, trip)
		}
	}
	return owned, nil
}

// AssignTraveller adds the traveller to the trip's assignment list. It fails
// when the trip or traveller is unknown, or when the traveller is already
// assigned.
func (tm *TripModel) AssignTraveller(ctx context.Context, tripID, travellerID string) error {
	trip, err := tm.GetTripByID(ctx, tripID)
	if err != nil {
		return err
	}

	if _, err := tm.travellerStore.GetTraveller(ctx, travellerID); err != nil {
		return errors.NotFound("Traveller", travellerID)
	}

	if trip.HasTraveller(travellerID) {
		return errors.Duplicate("Assignment", travellerID)
	}

	trip.TravellerIDs = append(trip.TravellerIDs, travellerID)
	if err := tm.store.SaveTrip(ctx, trip); err != nil {
		return errors.NewStorageError(err)
	}
	return nil
}

// RemoveTraveller removes the traveller from the trip's assignment list.
// Removing a traveller who is not assigned reports failure, not a no-op
// success.
func (tm *TripModel) RemoveTraveller(ctx context.Context, tripID, travellerID string) error {
	trip, err := tm.GetTripByID(ctx, tripID)
	if err != nil {
		return err
	}

	if !trip.HasTraveller(travellerID) {
		return errors.NotFound("Assignment", travellerID)
	}

	kept := make([]string, 0, len(trip.TravellerIDs)-1)
	for _, id := range trip.TravellerIDs {
		if id != travellerID {
			kept = append(kept, id)
		}
	}
	trip.TravellerIDs = kept

	if err := tm.store.SaveTrip(ctx, trip); err != nil {
		return errors.NewStorageError(err)
	}
	return nil
}

// AddLeg appends a leg to the trip. The sequence number is assigned as the
// current leg count plus one; deletions never renumber, so gaps can appear.
func (tm *TripModel) AddLeg(ctx context.Context, tripID string, leg types.TripLeg) (*types.TripLeg, error) {
	if err := validateLeg(leg); err != nil {
		return nil, err
	}

	trip, err := tm.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	leg.ID = utils.NewRecordID(utils.PrefixLeg)
	leg.Sequence = len(trip.Legs) + 1
	trip.Legs = append(trip.Legs, leg)

	if err := tm.store.SaveTrip(ctx, trip); err != nil {
		return nil, errors.NewStorageError(err)
	}
	return &leg, nil
}

// UpdateLeg replaces the leg with the matching identifier.
func (tm *TripModel) UpdateLeg(ctx context.Context, tripID string, leg types.TripLeg) error {
	if err := validateLeg(leg); err != nil {
		return err
	}

	trip, err := tm.GetTripByID(ctx, tripID)
	if err != nil {
		return err
	}

	found := false
	for i := range trip.Legs {
		if trip.Legs[i].ID == leg.ID {
			trip.Legs[i] = leg
			found = true
			break
		}
	}
	if !found {
		return errors.NotFound("Trip leg", leg.ID)
	}

	if err := tm.store.SaveTrip(ctx, trip); err != nil {
		return errors.NewStorageError(err)
	}
	return nil
}

// DeleteLeg removes the leg with the matching identifier. Remaining legs keep
// their sequence numbers.
func (tm *TripModel) DeleteLeg(ctx context.Context, tripID, legID string) error {
	trip, err := tm.GetTripByID(ctx, tripID)
	if err != nil {
		return err
	}

	kept := trip.Legs[:0]
	found := false
	for _, leg := range trip.Legs {
		if leg.ID == legID {
			found = true
			continue
		}
		kept = append(kept, leg)
	}
	if !found {
		return errors.NotFound("Trip leg", legID)
	}
	trip.Legs = kept

	if err := tm.store.SaveTrip(ctx, trip); err != nil {
		return errors.NewStorageError(err)
	}
	return nil
}

// BuildItinerary returns the trip's legs in stable sequence order.
func (tm *TripModel) BuildItinerary(ctx context.Context, tripID string) ([]types.TripLeg, error) {
	trip, err := tm.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return trip.Itinerary(), nil
}

// TotalLegCost returns the signed sum of the trip's leg costs.
func (tm *TripModel) TotalLegCost(ctx context.Context, tripID string) (decimal.Decimal, error) {
	trip, err := tm.GetTripByID(ctx, tripID)
	if err != nil {
		return decimal.Zero, err
	}
	return trip.TotalLegCost(), nil
}

func validateTrip(name string, startDate time.Time, durationDays int) error {
	var validationErrors []string

	if name == "" {
		validationErrors = append(validationErrors, "trip name is required")
	}
	if startDate.IsZero() {
		validationErrors = append(validationErrors, "trip start date is required")
	}
	if durationDays < 0 {
		validationErrors = append(validationErrors, "trip duration cannot be negative")
	}

	if len(validationErrors) > 0 {
		return errors.ValidationFailed(
			"Invalid trip data",
			strings.Join(validationErrors, "; "),
		)
	}
	return nil
}

func validateLeg(leg types.TripLeg) error {
	var validationErrors []string

	if leg.StartLocation == "" {
		validationErrors = append(validationErrors, "start location is required")
	}
	if leg.Destination == "" {
		validationErrors = append(validationErrors, "destination is required")
	}
	if !leg.Mode.IsValid() {
		validationErrors = append(validationErrors, "invalid transport mode")
	}
	if !leg.Type.IsValid() {
		validationErrors = append(validationErrors, "invalid leg type")
	}

	if len(validationErrors) > 0 {
		return errors.ValidationFailed(
			"Invalid trip leg data",
			strings.Join(validationErrors, "; "),
		)
	}
	return nil
}
