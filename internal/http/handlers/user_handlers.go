package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taller-baterias/inventario/internal/models"
	"github.com/taller-baterias/inventario/internal/repo"
)

// GetUsersHandler godoc
// @Summary List all user accounts without password hashes
// @Tags users
// @Produce json
// @Success 200 {array} UserResponse
// @Failure 500 {string} string "Internal error"
// @Router /users [get]
// @Security BearerAuth
func GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := userRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch users", http.StatusInternalServerError)
		return
	}

	response := make([]UserResponse, len(users))
	for i, u := range users {
		response[i] = UserResponse{
			Id:       u.ID,
			Username: u.Username,
			FullName: u.FullName,
			Admin:    models.IsAdmin(u.Username),
		}
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// CreateUserHandler godoc
// @Summary Create a new user account
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "New account"
// @Success 201 {object} UserResponse
// @Failure 400 {array} ProductValidationError
// @Failure 409 {string} string "User exists"
// @Failure 500 {string} string "Internal error"
// @Router /users [post]
// @Security BearerAuth
func CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateNewUser(req)
	if len(validationErrors) > 0 {
		if err := writeJSON(w, http.StatusBadRequest, validationErrors); err != nil {
			log.Printf("Failed to write JSON response: %v", err)
		}
		return
	}

	userRepo.SetCurrentUser(requestUsername(r))
	user, err := userRepo.Create(req.Username, req.FullName, req.Password)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			http.Error(w, "username already exists", http.StatusConflict)
			return
		}
		if errors.Is(err, repo.ErrEmptyField) {
			http.Error(w, "missing credentials", http.StatusBadRequest)
			return
		}
		http.Error(w, "could not create user", http.StatusInternalServerError)
		return
	}

	err = writeJSON(w, http.StatusCreated, UserResponse{
		Id:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Admin:    models.IsAdmin(user.Username),
	})
	if err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// DeleteUserHandler godoc
// @Summary Delete a user account
// @Tags users
// @Param username path string true "Username"
// @Success 204 "Deleted successfully"
// @Failure 403 {string} string "Administrator account is protected"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /users/{username} [delete]
// @Security BearerAuth
func DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	userRepo.SetCurrentUser(requestUsername(r))
	if err := userRepo.Delete(username); err != nil {
		switch {
		case errors.Is(err, repo.ErrProtectedUser):
			http.Error(w, "the administrator account cannot be deleted", http.StatusForbidden)
		case errors.Is(err, repo.ErrUserNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrEmptyField):
			http.Error(w, "missing username", http.StatusBadRequest)
		default:
			http.Error(w, "could not delete user", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChangePasswordHandler godoc
// @Summary Reset a user's password
// @Tags users
// @Accept json
// @Param username path string true "Username"
// @Param password body ChangePasswordRequest true "New password, confirmed"
// @Success 204 "Password changed"
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /users/{username}/password [put]
// @Security BearerAuth
func ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req ChangePasswordRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		http.Error(w, "missing password", http.StatusBadRequest)
		return
	}
	if req.Password != req.PasswordConfirm {
		http.Error(w, "passwords do not match", http.StatusBadRequest)
		return
	}

	userRepo.SetCurrentUser(requestUsername(r))
	if err := userRepo.ChangePassword(username, req.Password); err != nil {
		switch {
		case errors.Is(err, repo.ErrUserNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrEmptyField):
			http.Error(w, "missing username or password", http.StatusBadRequest)
		default:
			http.Error(w, "could not change password", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
