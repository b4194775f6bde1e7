package handlers

import (
	"strings"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(code string, p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(code) == "" {
		errs = append(errs, ProductValidationError{Field: "Codigo", Description: "Codigo is required"})
	}
	if p.Quantity < 0 {
		errs = append(errs, ProductValidationError{Field: "Cantidad", Description: "Cantidad cannot be negative"})
	}
	return errs
}

func validateNewUser(u CreateUserRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(u.Username) == "" {
		errs = append(errs, ProductValidationError{Field: "NombreUsuario", Description: "NombreUsuario is required"})
	}
	if u.Password == "" {
		errs = append(errs, ProductValidationError{Field: "Password", Description: "Password is required"})
	}
	if u.Password != u.PasswordConfirm {
		errs = append(errs, ProductValidationError{Field: "PasswordConfirmacion", Description: "Passwords do not match"})
	}
	return errs
}
