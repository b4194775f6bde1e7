package models

// AdminUsername is the reserved account that gates user management and
// can never be deleted.
const AdminUsername = "admin"

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"nombre_usuario"`
	FullName     string `json:"nombre_completo"`
	PasswordHash string `json:"-"`
}

// IsAdmin reports whether username is the reserved administrator account.
func IsAdmin(username string) bool {
	return username == AdminUsername
}
