// Package jsonfile implements the store interfaces over flat JSON documents,
// one file per collection. Every save performs a full read-modify-write cycle
// of the affected file; there is no locking, no indexing and no partial
// write. The package assumes a single process and a single user.
package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/config"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/store"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
)

// Store implements store.Store over JSON files in a data directory.
type Store struct {
	usersPath      string
	travellersPath string
	tripsPath      string
	invoicesPath   string
}

// New creates a Store rooted at the configured data directory, creating the
// directory if needed.
func New(cfg config.StorageConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}
	return &Store{
		usersPath:      filepath.Join(cfg.DataDir, cfg.UsersFile),
		travellersPath: filepath.Join(cfg.DataDir, cfg.TravellersFile),
		tripsPath:      filepath.Join(cfg.DataDir, cfg.TripsFile),
		invoicesPath:   filepath.Join(cfg.DataDir, cfg.InvoicesFile),
	}, nil
}

func (s *Store) User() store.UserStore           { return s }
func (s *Store) Traveller() store.TravellerStore { return s }
func (s *Store) Trip() store.TripStore           { return s }
func (s *Store) Invoice() store.InvoiceStore     { return s }

// Compile-time interface checks.
var (
	_ store.Store          = (*Store)(nil)
	_ store.UserStore      = (*Store)(nil)
	_ store.TravellerStore = (*Store)(nil)
	_ store.TripStore      = (*Store)(nil)
	_ store.InvoiceStore   = (*Store)(nil)
)

// readRawRecords loads a collection file as a list of raw JSON records.
// A missing or corrupt file is treated as an empty collection, never an
// error, so a fresh data directory and a damaged one both start clean.
func readRawRecords(path string) []json.RawMessage {
	log := logger.GetLogger()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnw("Failed to read collection file, treating as empty", "path", path, "error", err)
		}
		return nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warnw("Collection file is corrupt, treating as empty", "path", path, "error", err)
		return nil
	}
	return records
}

// writeRecords rewrites the entire collection file.
func writeRecords(path string, records interface{}) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Accepted timestamp layouts. Existing files carry full ISO 8601 timestamps;
// newly written date-only fields use the short form.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
