package dto

import "time"

// BusinessResponse datos del negocio.
type BusinessResponse struct {
	ID                      string    `json:"id"`
	Name                    string    `json:"name"`
	Email                   string    `json:"email"`
	AddressLine1            string    `json:"addressLine1"`
	AddressLine2            string    `json:"addressLine2"`
	City                    string    `json:"city"`
	Postcode                string    `json:"postcode"`
	Country                 string    `json:"country"`
	RSUReferenceDescription string    `json:"rsuReferenceDescription"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// UpdateBusinessRequest edición de los datos del negocio.
type UpdateBusinessRequest struct {
	Name                    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email                   *string `json:"email" validate:"omitempty,email"`
	AddressLine1            *string `json:"addressLine1" validate:"omitempty,max=200"`
	AddressLine2            *string `json:"addressLine2" validate:"omitempty,max=200"`
	City                    *string `json:"city" validate:"omitempty,max=100"`
	Postcode                *string `json:"postcode" validate:"omitempty,max=20"`
	Country                 *string `json:"country" validate:"omitempty,max=100"`
	RSUReferenceDescription *string `json:"rsuReferenceDescription" validate:"omitempty,max=500"`
}
