package jsonfile

import (
	"context"
	"encoding/json"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/store"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

// travellerRecord is the persisted shape of a traveller.
type travellerRecord struct {
	TravellerID      string `json:"traveller_id"`
	Name             string `json:"name"`
	Address          string `json:"address"`
	DateOfBirth      string `json:"date_of_birth"`
	EmergencyContact string `json:"emergency_contact"`
	GovernmentID     string `json:"government_id"`
}

func travellerToRecord(t *types.Traveller) travellerRecord {
	return travellerRecord{
		TravellerID:      t.ID,
		Name:             t.Name,
		Address:          t.Address,
		DateOfBirth:      t.DateOfBirth.Format("2006-01-02"),
		EmergencyContact: t.EmergencyContact,
		GovernmentID:     t.GovernmentID,
	}
}

func (s *Store) loadTravellerRecords() []travellerRecord {
	log := logger.GetLogger()
	raw := readRawRecords(s.travellersPath)
	records := make([]travellerRecord, 0, len(raw))
	for _, msg := range raw {
		var rec travellerRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			log.Warnw("Skipping malformed traveller record", "error", err)
			continue
		}
		if rec.TravellerID == "" {
			log.Warnw("Skipping traveller record with missing identifier", "name", rec.Name)
			continue
		}
		records = append(records, rec)
	}
	return records
}

func travellerFromRecord(rec travellerRecord) (*types.Traveller, error) {
	dob, err := parseDate(rec.DateOfBirth)
	if err != nil {
		return nil, err
	}
	return &types.Traveller{
		ID:               rec.TravellerID,
		Name:             rec.Name,
		Address:          rec.Address,
		DateOfBirth:      dob,
		EmergencyContact: rec.EmergencyContact,
		GovernmentID:     rec.GovernmentID,
	}, nil
}

// loadTravellers converts records into domain objects, skipping records whose
// date of birth cannot be parsed.
func (s *Store) loadTravellers() []*types.Traveller {
	log := logger.GetLogger()
	records := s.loadTravellerRecords()
	travellers := make([]*types.Traveller, 0, len(records))
	for _, rec := range records {
		traveller, err := travellerFromRecord(rec)
		if err != nil {
			log.Warnw("Skipping traveller record with invalid date of birth",
				"traveller_id", rec.TravellerID, "date_of_birth", rec.DateOfBirth, "error", err)
			continue
		}
		travellers = append(travellers, traveller)
	}
	return travellers
}

// SaveTraveller upserts the traveller by identifier and rewrites the collection.
func (s *Store) SaveTraveller(ctx context.Context, traveller *types.Traveller) error {
	records := s.loadTravellerRecords()
	rec := travellerToRecord(traveller)

	found := false
	for i := range records {
		if records[i].TravellerID == rec.TravellerID {
			records[i] = rec
			found = true
			break
		}
	}
	if !found {
		records = append(records, rec)
	}

	return writeRecords(s.travellersPath, records)
}

func (s *Store) GetTraveller(ctx context.Context, id string) (*types.Traveller, error) {
	for _, traveller := range s.loadTravellers() {
		if traveller.ID == id {
			return traveller, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListTravellers(ctx context.Context) ([]*types.Traveller, error) {
	return s.loadTravellers(), nil
}

// DeleteTraveller removes the record and cascades into the trip collection,
// stripping the identifier from every trip's assignment list.
func (s *Store) DeleteTraveller(ctx context.Context, id string) error {
	log := logger.GetLogger()

	records := s.loadTravellerRecords()
	kept := records[:0]
	found := false
	for _, rec := range records {
		if rec.TravellerID == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return store.ErrNotFound
	}
	if err := writeRecords(s.travellersPath, kept); err != nil {
		return err
	}

	// Cascade: strip the traveller from every trip's assignment list.
	tripRecords := s.loadTripRecords()
	changed := 0
	for i := range tripRecords {
		ids := tripRecords[i].TravellerIDs
		filtered := ids[:0]
		for _, tid := range ids {
			if tid == id {
				continue
			}
			filtered = append(filtered, tid)
		}
		if len(filtered) != len(ids) {
			tripRecords[i].TravellerIDs = filtered
			changed++
		}
	}
	if changed > 0 {
		log.Infow("Removed deleted traveller from trip assignments",
			"traveller_id", id, "trips_updated", changed)
		return writeRecords(s.tripsPath, tripRecords)
	}
	return nil
}
