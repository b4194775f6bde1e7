package handlers

import (
	"log"
	"net/http"

	"github.com/taller-baterias/inventario/internal/auth"
	"github.com/taller-baterias/inventario/internal/models"
)

// LoginHandler godoc
// @Summary Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials CredentialsRequest
	if err := readJSON(w, r, &credentials); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	// Unknown user and wrong password are indistinguishable on purpose.
	user, err := userRepo.Authenticate(credentials.Username, credentials.Password)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	err = writeJSON(w, http.StatusOK, LoginResult{
		Token: token,
		User: UserResponse{
			Id:       user.ID,
			Username: user.Username,
			FullName: user.FullName,
			Admin:    models.IsAdmin(user.Username),
		},
	})
	if err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
