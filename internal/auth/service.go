// Package auth provides credential checks against the user collection and
// holds the single active console session.
package auth

import (
	"context"
	"fmt"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/config"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/errors"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/store"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/utils"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

const genericLoginMessage = "Invalid username or password."

// Service authenticates users and tracks the current session. The system is
// single-user: exactly one session reference exists at a time.
type Service struct {
	store       store.UserStore
	cfg         config.AuthConfig
	users       []*types.User
	currentUser *types.User
}

// NewService creates the service and loads the user collection into memory.
func NewService(ctx context.Context, userStore store.UserStore, cfg config.AuthConfig) (*Service, error) {
	s := &Service{
		store: userStore,
		cfg:   cfg,
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload refreshes the in-memory user list from the store.
func (s *Service) Reload(ctx context.Context) error {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return errors.NewStorageError(err)
	}
	s.users = users
	return nil
}

// Login attempts to authenticate the given credentials against the loaded
// user collection. The username match is case-sensitive and takes the first
// matching record. By default the failure message distinguishes an unknown
// username from a wrong password; setting GenericLoginErrors collapses both
// into one generic message.
func (s *Service) Login(username, password string) (bool, string, *types.User) {
	log := logger.GetLogger()

	for _, user := range s.users {
		if user.Username != username {
			continue
		}
		if types.CheckPassword(password, user.PasswordHash) {
			s.currentUser = user
			log.Infow("Login successful", "username", username, "role", user.Role)
			return true, fmt.Sprintf("Login successful! Welcome, %s.", user.DisplayName()), user
		}
		log.Warnw("Login failed: incorrect password", "username", username)
		if s.cfg.GenericLoginErrors {
			return false, genericLoginMessage, nil
		}
		return false, "Incorrect password.", nil
	}

	log.Warnw("Login failed: username not found", "username", username)
	if s.cfg.GenericLoginErrors {
		return false, genericLoginMessage, nil
	}
	return false, "Username not found.", nil
}

// Logout clears the current session unconditionally.
func (s *Service) Logout() {
	s.currentUser = nil
}

// CurrentUser returns the currently logged-in user, or nil.
func (s *Service) CurrentUser() *types.User {
	return s.currentUser
}

// EnsureDefaultAdmin seeds one administrator from the configured credential
// when no user with the Administrator role exists. It is idempotent and must
// be called explicitly by the composition root.
func (s *Service) EnsureDefaultAdmin(ctx context.Context) error {
	log := logger.GetLogger()

	for _, user := range s.users {
		if user.Role == types.RoleAdministrator {
			log.Debug("Default admin already exists, skipping bootstrap")
			return nil
		}
	}

	if s.cfg.DefaultAdminPassword == "" {
		return errors.ValidationFailed(
			"Cannot seed default administrator",
			"no default admin password configured",
		)
	}

	admin := &types.User{
		ID:       utils.NewRecordID(utils.PrefixUser),
		Username: s.cfg.DefaultAdminUsername,
		Name:     s.cfg.DefaultAdminName,
		Role:     types.RoleAdministrator,
	}
	if err := admin.HashPassword(s.cfg.DefaultAdminPassword); err != nil {
		return errors.Wrap(err, errors.ServerError, "Failed to hash default admin password")
	}

	if err := s.store.SaveUser(ctx, admin); err != nil {
		return errors.NewStorageError(err)
	}

	log.Infow("Default administrator created",
		"username", admin.Username,
		"password", logger.MaskSensitiveString(s.cfg.DefaultAdminPassword, 1, 1),
	)
	return s.Reload(ctx)
}
