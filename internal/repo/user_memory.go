package repo

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/taller-baterias/inventario/internal/changelog"
	"github.com/taller-baterias/inventario/internal/models"
)

// InMemoryUserRepository is a non-persistent UserRepository used in tests.
// It is guarded the same way as the persistent repositories because the
// handlers drive it from concurrent requests.
type InMemoryUserRepository struct {
	history *changelog.Logger

	mu       sync.Mutex
	username string
	users    []models.User
	nextID   int
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{nextID: 1}
}

func (r *InMemoryUserRepository) SetHistory(history *changelog.Logger) {
	r.history = history
}

func (r *InMemoryUserRepository) SetCurrentUser(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.username = username
}

// EnsureDefaultAdmin mirrors the persistent repository's seeding behavior.
func (r *InMemoryUserRepository) EnsureDefaultAdmin() error {
	r.mu.Lock()
	empty := len(r.users) == 0
	r.mu.Unlock()
	if !empty {
		return nil
	}
	_, err := r.Create(models.AdminUsername, "Administrador del Sistema", defaultAdminPassword)
	return err
}

func (r *InMemoryUserRepository) Create(username, fullName, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, ErrEmptyField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return models.User{}, ErrDuplicateUsername
		}
	}

	u := models.User{ID: r.nextID, Username: username, FullName: fullName, PasswordHash: string(hash)}
	r.nextID++
	r.users = append(r.users, u)

	r.history.Append(r.username, "Usuario Creado",
		fmt.Sprintf("Usuario: %s, Nombre Completo: %s", username, fullName))

	u.PasswordHash = ""
	return u, nil
}

func (r *InMemoryUserRepository) Authenticate(username, password string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
				return models.User{}, ErrInvalidCredentials
			}
			u.PasswordHash = ""
			return u, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}

func (r *InMemoryUserRepository) GetAll() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, len(r.users))
	for i, u := range r.users {
		u.PasswordHash = ""
		out[i] = u
	}
	return out, nil
}

func (r *InMemoryUserRepository) Delete(username string) error {
	if username == "" {
		return ErrEmptyField
	}
	if models.IsAdmin(username) {
		return ErrProtectedUser
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.Username == username {
			r.users = append(r.users[:i], r.users[i+1:]...)
			r.history.Append(r.username, "Usuario Eliminado", fmt.Sprintf("Usuario: %s", username))
			return nil
		}
	}
	return ErrUserNotFound
}

func (r *InMemoryUserRepository) ChangePassword(username, newPassword string) error {
	if username == "" || newPassword == "" {
		return ErrEmptyField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.Username == username {
			r.users[i].PasswordHash = string(hash)
			r.history.Append(r.username, "Contraseña Cambiada", fmt.Sprintf("Usuario: %s", username))
			return nil
		}
	}
	return ErrUserNotFound
}
