package entity

import "time"

// Category representa una etiqueta de artículos dentro de un negocio.
type Category struct {
	ID          string
	BusinessID  string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
