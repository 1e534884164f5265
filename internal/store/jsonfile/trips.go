package jsonfile

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/store"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

// legRecord is the persisted shape of a trip leg, embedded in its trip.
type legRecord struct {
	LegID             string          `json:"leg_id"`
	Sequence          int             `json:"sequence"`
	StartLocation     string          `json:"start_location"`
	Destination       string          `json:"destination"`
	TransportProvider string          `json:"transport_provider"`
	TransportMode     string          `json:"transport_mode"`
	LegType           string          `json:"leg_type"`
	Cost              decimal.Decimal `json:"cost"`
	Description       string          `json:"description"`
}

// tripRecord is the persisted shape of a trip. Legs are embedded; the
// coordinator and travellers are stored by identifier only.
type tripRecord struct {
	TripID        string      `json:"trip_id"`
	Name          string      `json:"name"`
	StartDate     string      `json:"start_date"`
	DurationDays  int         `json:"duration_days"`
	CoordinatorID *string     `json:"coordinator_id"`
	TravellerIDs  []string    `json:"traveller_ids"`
	TripLegs      []legRecord `json:"trip_legs"`
	IsActive      bool        `json:"is_active"`
}

func legToRecord(l types.TripLeg) legRecord {
	return legRecord{
		LegID:             l.ID,
		Sequence:          l.Sequence,
		StartLocation:     l.StartLocation,
		Destination:       l.Destination,
		TransportProvider: l.Provider,
		TransportMode:     string(l.Mode),
		LegType:           string(l.Type),
		Cost:              l.Cost,
		Description:       l.Description,
	}
}

func legFromRecord(r legRecord) types.TripLeg {
	return types.TripLeg{
		ID:            r.LegID,
		Sequence:      r.Sequence,
		StartLocation: r.StartLocation,
		Destination:   r.Destination,
		Provider:      r.TransportProvider,
		Mode:          types.TransportMode(r.TransportMode),
		Type:          types.LegType(r.LegType),
		Cost:          r.Cost,
		Description:   r.Description,
	}
}

func tripToRecord(t *types.Trip) tripRecord {
	rec := tripRecord{
		TripID:       t.ID,
		Name:         t.Name,
		StartDate:    t.StartDate.Format("2006-01-02"),
		DurationDays: t.DurationDays,
		TravellerIDs: t.TravellerIDs,
		IsActive:     t.IsActive,
	}
	if rec.TravellerIDs == nil {
		rec.TravellerIDs = []string{}
	}
	if t.Coordinator.ID != "" {
		id := t.Coordinator.ID
		rec.CoordinatorID = &id
	}
	rec.TripLegs = make([]legRecord, 0, len(t.Legs))
	for _, leg := range t.Legs {
		rec.TripLegs = append(rec.TripLegs, legToRecord(leg))
	}
	return rec
}

func (s *Store) loadTripRecords() []tripRecord {
	log := logger.GetLogger()
	raw := readRawRecords(s.tripsPath)
	records := make([]tripRecord, 0, len(raw))
	for _, msg := range raw {
		var rec tripRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			log.Warnw("Skipping malformed trip record", "error", err)
			continue
		}
		if rec.TripID == "" {
			log.Warnw("Skipping trip record with missing identifier", "name", rec.Name)
			continue
		}
		records = append(records, rec)
	}
	return records
}

// loadTrips reconstructs trips with their cross-references resolved: the
// coordinator against the user collection and assigned travellers against
// the traveller collection. A missing coordinator yields an unresolved
// reference; missing travellers are dropped from the resolved slice but keep
// their place in TravellerIDs.
func (s *Store) loadTrips() []*types.Trip {
	log := logger.GetLogger()
	records := s.loadTripRecords()

	usersByID := make(map[string]*types.User)
	for _, rec := range s.loadUserRecords() {
		usersByID[rec.UserID] = userFromRecord(rec)
	}
	travellersByID := make(map[string]*types.Traveller)
	for _, traveller := range s.loadTravellers() {
		travellersByID[traveller.ID] = traveller
	}

	trips := make([]*types.Trip, 0, len(records))
	for _, rec := range records {
		startDate, err := parseDate(rec.StartDate)
		if err != nil {
			log.Warnw("Skipping trip record with invalid start date",
				"trip_id", rec.TripID, "start_date", rec.StartDate, "error", err)
			continue
		}

		trip := &types.Trip{
			ID:           rec.TripID,
			Name:         rec.Name,
			StartDate:    startDate,
			DurationDays: rec.DurationDays,
			TravellerIDs: rec.TravellerIDs,
			IsActive:     rec.IsActive,
		}
		if trip.TravellerIDs == nil {
			trip.TravellerIDs = []string{}
		}

		if rec.CoordinatorID != nil && *rec.CoordinatorID != "" {
			if coordinator, ok := usersByID[*rec.CoordinatorID]; ok {
				trip.Coordinator = types.ResolvedRef(coordinator.ID, coordinator)
			} else {
				log.Warnw("Trip references a missing coordinator",
					"trip_id", rec.TripID, "coordinator_id", *rec.CoordinatorID)
				trip.Coordinator = types.UnresolvedRef[types.User](*rec.CoordinatorID)
			}
		}

		for _, travellerID := range rec.TravellerIDs {
			if traveller, ok := travellersByID[travellerID]; ok {
				trip.Travellers = append(trip.Travellers, *traveller)
			} else {
				log.Warnw("Trip references a missing traveller",
					"trip_id", rec.TripID, "traveller_id", travellerID)
			}
		}

		trip.Legs = make([]types.TripLeg, 0, len(rec.TripLegs))
		for _, legRec := range rec.TripLegs {
			trip.Legs = append(trip.Legs, legFromRecord(legRec))
		}

		trips = append(trips, trip)
	}
	return trips
}

// SaveTrip upserts the trip by identifier and rewrites the collection.
// Referenced users and travellers are not re-saved.
func (s *Store) SaveTrip(ctx context.Context, trip *types.Trip) error {
	records := s.loadTripRecords()
	rec := tripToRecord(trip)

	found := false
	for i := range records {
		if records[i].TripID == rec.TripID {
			records[i] = rec
			found = true
			break
		}
	}
	if !found {
		records = append(records, rec)
	}

	return writeRecords(s.tripsPath, records)
}

func (s *Store) GetTrip(ctx context.Context, id string) (*types.Trip, error) {
	for _, trip := range s.loadTrips() {
		if trip.ID == id {
			return trip, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListTrips(ctx context.Context) ([]*types.Trip, error) {
	return s.loadTrips(), nil
}

// DeleteTrip is a hard remove of the trip record. Invoices referencing the
// trip are left in place and skipped on invoice load.
func (s *Store) DeleteTrip(ctx context.Context, id string) error {
	records := s.loadTripRecords()
	kept := records[:0]
	found := false
	for _, rec := range records {
		if rec.TripID == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return store.ErrNotFound
	}
	return writeRecords(s.tripsPath, kept)
}
