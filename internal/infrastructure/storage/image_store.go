// Package storage guarda en disco las imágenes subidas por los usuarios.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/jhoicas/retail-inventory/internal/application/ports"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/pkg/config"
)

var _ ports.ImageStore = (*DiskImageStore)(nil)

// Tipos aceptados y su extensión en disco.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// DiskImageStore escribe imágenes en Dir con nombre UUID y las publica bajo PublicPath.
type DiskImageStore struct {
	dir        string
	publicPath string
	maxBytes   int
}

// NewDiskImageStore crea el directorio de subida si no existe.
func NewDiskImageStore(cfg config.UploadConfig) (*DiskImageStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskImageStore{
		dir:        cfg.Dir,
		publicPath: "/" + strings.Trim(cfg.PublicPath, "/"),
		maxBytes:   cfg.MaxBytes,
	}, nil
}

// Save detecta el tipo por contenido (no por nombre ni cabeceras) y devuelve la URL pública.
func (s *DiskImageStore) Save(_ context.Context, data []byte) (string, error) {
	if s.maxBytes > 0 && len(data) > s.maxBytes {
		return "", domain.NewValidationError("image", fmt.Sprintf("excede el máximo de %d bytes", s.maxBytes))
	}
	mt := mimetype.Detect(data)
	ext, ok := allowedImageTypes[mt.String()]
	if !ok {
		return "", domain.NewValidationError("image", "tipo no permitido: "+mt.String())
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path.Join(s.publicPath, name), nil
}
