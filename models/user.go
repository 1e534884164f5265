package models

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/errors"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/store"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/utils"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

// UserModel enforces the user lifecycle rules: role-gated creation, username
// uniqueness and the self-deletion guard. Roles are fixed at creation.
type UserModel struct {
	store store.UserStore
}

func NewUserModel(store store.UserStore) *UserModel {
	return &UserModel{store: store}
}

// CreateUser creates a user with the given role on behalf of creator.
// Administrators create trip managers; administrators and trip managers
// create trip coordinators. A username collision fails with a DuplicateError
// and leaves the store untouched.
func (um *UserModel) CreateUser(ctx context.Context, creator *types.User, username, password, name string, role types.Role) (*types.User, error) {
	log := logger.GetLogger()

	if err := validateNewUser(username, password, role); err != nil {
		return nil, err
	}

	if creator != nil {
		switch role {
		case types.RoleManager:
			if !types.CanManageManagers(creator.Role) {
				return nil, errors.Forbidden("Cannot create trip manager",
					"only administrators may create trip managers")
			}
		case types.RoleCoordinator:
			if !types.CanManageCoordinators(creator.Role) {
				return nil, errors.Forbidden("Cannot create trip coordinator",
					"only administrators and trip managers may create trip coordinators")
			}
		case types.RoleAdministrator:
			if !types.CanManageManagers(creator.Role) {
				return nil, errors.Forbidden("Cannot create administrator",
					"only administrators may create administrators")
			}
		}
	}

	if _, err := um.store.GetUserByUsername(ctx, username); err == nil {
		return nil, errors.Duplicate("Username", username)
	} else if !stderrors.Is(err, store.ErrNotFound) {
		return nil, errors.NewStorageError(err)
	}

	user := &types.User{
		ID:       utils.NewRecordID(utils.PrefixUser),
		Username: username,
		Name:     name,
		Role:     role,
	}
	if err := user.HashPassword(password); err != nil {
		return nil, errors.Wrap(err, errors.ServerError, "Failed to hash password")
	}

	if err := um.store.SaveUser(ctx, user); err != nil {
		return nil, errors.NewStorageError(err)
	}

	log.Infow("User created", "user_id", user.ID, "username", user.Username, "role", user.Role)
	return user, nil
}

// DeleteUser removes a user. Self-deletion is forbidden.
func (um *UserModel) DeleteUser(ctx context.Context, actor *types.User, id string) error {
	if actor != nil && actor.ID == id {
		return errors.Forbidden("Cannot delete your own account",
			"users may not delete themselves")
	}

	if err := um.store.DeleteUser(ctx, id); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.NotFound("User", id)
		}
		return errors.NewStorageError(err)
	}
	return nil
}

func (um *UserModel) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	user, err := um.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("User", id)
	}
	return user, nil
}

func (um *UserModel) ListUsers(ctx context.Context) ([]*types.User, error) {
	users, err := um.store.ListUsers(ctx)
	if err != nil {
		return nil, errors.NewStorageError(err)
	}
	return users, nil
}

// ListUsersByRole filters the collection down to one role.
func (um *UserModel) ListUsersByRole(ctx context.Context, role types.Role) ([]*types.User, error) {
	users, err := um.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]*types.User, 0, len(users))
	for _, user := range users {
		if user.Role == role {
			filtered = append(filtered, user)
		}
	}
	return filtered, nil
}

func validateNewUser(username, password string, role types.Role) error {
	var validationErrors []string

	if username == "" {
		validationErrors = append(validationErrors, "username is required")
	}
	if password == "" {
		validationErrors = append(validationErrors, "password is required")
	}
	if !role.IsValid() {
		validationErrors = append(validationErrors, "invalid role")
	}

	if len(validationErrors) > 0 {
		return errors.ValidationFailed(
			"Invalid user data",
			strings.Join(validationErrors, "; "),
		)
	}
	return nil
}
