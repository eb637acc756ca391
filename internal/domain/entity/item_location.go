package entity

import "time"

// ItemLocation es la cantidad de un artículo en una ubicación. Clave (LocationID, ItemID).
// La ausencia de fila equivale a cantidad cero.
type ItemLocation struct {
	LocationID string
	ItemID     string
	Quantity   int
	UpdatedAt  time.Time
}
