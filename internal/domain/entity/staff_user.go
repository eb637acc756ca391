package entity

import "time"

// StaffUser representa un usuario de un negocio. El propietario no puede eliminarse ni degradarse.
type StaffUser struct {
	ID           string
	BusinessID   string
	Username     string
	PasswordHash string // bcrypt hash
	FirstName    string
	LastName     string
	IsAdmin      bool
	IsOwner      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
