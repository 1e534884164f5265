package jsonfile

import (
	"context"
	"encoding/json"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/store"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

// userRecord is the persisted shape of a user. Field names match the
// existing data files.
type userRecord struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Password string `json:"password"` // bcrypt digest
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func userToRecord(u *types.User) userRecord {
	return userRecord{
		UserID:   u.ID,
		Username: u.Username,
		Password: u.PasswordHash,
		Name:     u.Name,
		Role:     string(u.Role),
	}
}

func userFromRecord(r userRecord) *types.User {
	return &types.User{
		ID:           r.UserID,
		Username:     r.Username,
		PasswordHash: r.Password,
		Name:         r.Name,
		Role:         types.Role(r.Role),
	}
}

// loadUserRecords decodes the user collection, logging and skipping any
// record that fails to reconstruct.
func (s *Store) loadUserRecords() []userRecord {
	log := logger.GetLogger()
	raw := readRawRecords(s.usersPath)
	records := make([]userRecord, 0, len(raw))
	for _, msg := range raw {
		var rec userRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			log.Warnw("Skipping malformed user record", "error", err)
			continue
		}
		if rec.UserID == "" || rec.Username == "" {
			log.Warnw("Skipping user record with missing identifier", "username", rec.Username)
			continue
		}
		if !types.Role(rec.Role).IsValid() {
			log.Warnw("Skipping user record with unknown role", "username", rec.Username, "role", rec.Role)
			continue
		}
		records = append(records, rec)
	}
	return records
}

// SaveUser upserts the user by identifier and rewrites the collection.
func (s *Store) SaveUser(ctx context.Context, user *types.User) error {
	records := s.loadUserRecords()
	rec := userToRecord(user)

	found := false
	for i := range records {
		if records[i].UserID == rec.UserID {
			records[i] = rec
			found = true
			break
		}
	}
	if !found {
		records = append(records, rec)
	}

	return writeRecords(s.usersPath, records)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	for _, rec := range s.loadUserRecords() {
		if rec.UserID == id {
			return userFromRecord(rec), nil
		}
	}
	return nil, store.ErrNotFound
}

// GetUserByUsername finds the first record with a matching username.
// The match is case-sensitive.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	for _, rec := range s.loadUserRecords() {
		if rec.Username == username {
			return userFromRecord(rec), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListUsers(ctx context.Context) ([]*types.User, error) {
	records := s.loadUserRecords()
	users := make([]*types.User, 0, len(records))
	for _, rec := range records {
		users = append(users, userFromRecord(rec))
	}
	return users, nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	records := s.loadUserRecords()
	kept := records[:0]
	found := false
	for _, rec := range records {
		if rec.UserID == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return store.ErrNotFound
	}
	return writeRecords(s.usersPath, kept)
}
