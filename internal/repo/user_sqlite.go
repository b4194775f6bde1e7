package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taller-baterias/inventario/internal/changelog"
	"github.com/taller-baterias/inventario/internal/models"
)

// defaultAdminPassword seeds the reserved account on a fresh database. It
// is expected to be changed through the settings screen afterwards.
const defaultAdminPassword = "admin"

// SQLiteUserRepository persists user accounts in the usuarios table.
type SQLiteUserRepository struct {
	db      *sql.DB
	history *changelog.Logger

	mu       sync.Mutex
	username string
}

func NewSQLiteUserRepository(db *sql.DB, history *changelog.Logger) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db, history: history}
}

// SetCurrentUser is called per request, so the attribution field is
// guarded against overlapping requests.
func (r *SQLiteUserRepository) SetCurrentUser(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.username = username
}

func (r *SQLiteUserRepository) currentUser() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.username
}

// EnsureSchema idempotently creates the usuarios table.
func (r *SQLiteUserRepository) EnsureSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS usuarios (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nombre_usuario TEXT UNIQUE NOT NULL,
			nombre_completo TEXT NOT NULL,
			password_hash TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create usuarios table: %w", err)
	}
	return nil
}

// EnsureDefaultAdmin seeds the reserved administrator account when the
// directory is empty, logged as a system action.
func (r *SQLiteUserRepository) EnsureDefaultAdmin() error {
	users, err := r.GetAll()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	if _, err := r.Create(models.AdminUsername, "Administrador del Sistema", defaultAdminPassword); err != nil {
		return fmt.Errorf("failed to seed administrator account: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepository) Create(username, fullName, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, ErrEmptyField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var u models.User
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO usuarios (nombre_usuario, nombre_completo, password_hash) VALUES (?, ?, ?) RETURNING id`,
		username, fullName, string(hash)).Scan(&u.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, err
	}
	u.Username = username
	u.FullName = fullName

	r.history.Append(r.currentUser(), "Usuario Creado",
		fmt.Sprintf("Usuario: %s, Nombre Completo: %s", username, fullName))
	return u, nil
}

func (r *SQLiteUserRepository) Authenticate(username, password string) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nombre_usuario, nombre_completo, password_hash FROM usuarios WHERE nombre_usuario = ?`,
		username).Scan(&u.ID, &u.Username, &u.FullName, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	u.PasswordHash = ""
	return u, nil
}

func (r *SQLiteUserRepository) GetAll() ([]models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, nombre_usuario, nombre_completo FROM usuarios`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *SQLiteUserRepository) Delete(username string) error {
	if username == "" {
		return ErrEmptyField
	}
	if models.IsAdmin(username) {
		return ErrProtectedUser
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM usuarios WHERE nombre_usuario = ?`, username)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrUserNotFound
	}

	r.history.Append(r.currentUser(), "Usuario Eliminado", fmt.Sprintf("Usuario: %s", username))
	return nil
}

func (r *SQLiteUserRepository) ChangePassword(username, newPassword string) error {
	if username == "" || newPassword == "" {
		return ErrEmptyField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE usuarios SET password_hash = ? WHERE nombre_usuario = ?`, string(hash), username)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrUserNotFound
	}

	r.history.Append(r.currentUser(), "Contraseña Cambiada", fmt.Sprintf("Usuario: %s", username))
	return nil
}
