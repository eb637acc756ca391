package dto

import "time"

// CreateUserRequest alta de un usuario del negocio.
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	IsAdmin   bool   `json:"isAdmin"`
}

// UpdateUserRequest edición de un usuario. Password vacío no cambia la contraseña.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	IsAdmin   *bool   `json:"isAdmin"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
}

// UserResponse salida de un usuario (sin hash).
type UserResponse struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"businessId"`
	Username   string    `json:"username"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	IsAdmin    bool      `json:"isAdmin"`
	IsOwner    bool      `json:"isOwner"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RegisterRequest alta de un negocio y su usuario propietario.
type RegisterRequest struct {
	BusinessName string `json:"businessName" validate:"required,min=1,max=200"`
	Email        string `json:"email" validate:"required,email"`
	Username     string `json:"username" validate:"required,min=3,max=50"`
	Password     string `json:"password" validate:"required,min=8"`
	FirstName    string `json:"firstName" validate:"max=100"`
	LastName     string `json:"lastName" validate:"max=100"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sesión y usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
