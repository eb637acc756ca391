package ports

import "context"

// ImageStore define el puerto de salida para guardar imágenes de ubicaciones.
type ImageStore interface {
	// Save guarda el contenido y devuelve la URL pública. Rechaza tipos no permitidos con domain.ErrInvalidInput.
	Save(ctx context.Context, data []byte) (string, error)
}
