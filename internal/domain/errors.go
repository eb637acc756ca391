package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUsernameTaken      = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Reglas de negocio del inventario (HTTP 400 con mensaje específico).
	ErrInvalidReference            = errors.New("referencia inválida")
	ErrDuplicateLocationAssignment = errors.New("el artículo ya está asignado a esta ubicación; use el conteo de stock para cambiar la cantidad")
	ErrLocationNotEmpty            = errors.New("la ubicación tiene artículos asignados")
	ErrDuplicateName               = errors.New("el nombre o código ya existe")
	ErrCategoryInUse               = errors.New("la categoría está en uso")
	ErrOwnerProtected              = errors.New("el propietario no puede eliminarse ni perder permisos de administrador")
)

// ValidationError describe un campo requerido ausente o inválido.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError para un campo.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
