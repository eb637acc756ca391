package entity

import "time"

// Business representa un tenant (una cuenta de comercio). Se crea en el registro.
type Business struct {
	ID                      string
	Name                    string
	Email                   string
	AddressLine1            string
	AddressLine2            string
	City                    string
	Postcode                string
	Country                 string
	RSUReferenceDescription string // producto de referencia que define 1 RSU
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
