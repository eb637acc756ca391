package entity

import "time"

// CatalogProduct representa un producto del catálogo global (compartido por todos los negocios).
// No pertenece a ningún tenant; los BusinessItem lo referencian.
type CatalogProduct struct {
	ID          string
	Name        string
	Barcode     string
	Description string
	PackSize    string
	CreatedAt   time.Time
}
