package repo

import (
	"errors"

	"github.com/taller-baterias/inventario/internal/models"
)

// UserRepository manages the user directory. Password hashes never leave
// the store; Authenticate is the only operation that reads them.
type UserRepository interface {
	Create(username, fullName, password string) (models.User, error)
	// Authenticate returns the account's public fields when password
	// matches. Unknown users and wrong passwords both fail with
	// ErrInvalidCredentials, with no distinguishing signal.
	Authenticate(username, password string) (models.User, error)
	GetAll() ([]models.User, error)
	// Delete refuses to remove the reserved administrator account.
	Delete(username string) error
	// ChangePassword rehashes with a fresh salt. It does not require the
	// old password; access control is the caller's concern.
	ChangePassword(username, newPassword string) error
	SetCurrentUser(username string)
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProtectedUser      = errors.New("the administrator account cannot be deleted")
	ErrEmptyField         = errors.New("required field is empty")
)
