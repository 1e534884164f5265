package types

import "golang.org/x/crypto/bcrypt"

// Role is the user's role tag. The persisted values match the role names
// used in existing data files.
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleManager       Role = "Trip Manager"
	RoleCoordinator   Role = "Trip Coordinator"
)

// IsValid checks if the role is a known role tag.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdministrator, RoleManager, RoleCoordinator:
		return true
	default:
		return false
	}
}

// String provides a string representation of the role.
func (r Role) String() string {
	return string(r)
}

// User represents a system user. Role is fixed at creation; there is no role
// change operation.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
}

// DisplayName returns the user's name for UI purposes, falling back to the
// username when no name is set.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// HashPassword derives and stores a bcrypt digest of the given password.
func (u *User) HashPassword(password string) error {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(bytes)
	return nil
}

// CheckPassword reports whether the given password matches the stored digest.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Permission checks expressed as free functions over the role tag.

// CanManageManagers reports whether the role may create or delete trip managers.
func CanManageManagers(r Role) bool {
	return r == RoleAdministrator
}

// CanManageCoordinators reports whether the role may create or delete trip coordinators.
func CanManageCoordinators(r Role) bool {
	return r == RoleAdministrator || r == RoleManager
}

// CanOwnTrips reports whether the role may be attached to a trip as its coordinator.
func CanOwnTrips(r Role) bool {
	return r == RoleCoordinator
}
