package domain

import "errors"

// Admin is the single operator identity configured through the environment.
type Admin struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

const RoleAdmin = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfigured      = errors.New("admin credentials not configured")
)
