package domain

// Tenant es el contexto del negocio resuelto desde la sesión verificada.
// Se construye una vez por petición y se pasa explícitamente a cada caso de uso.
type Tenant struct {
	BusinessID string
	UserID     string
	IsAdmin    bool
	IsOwner    bool
}

// Valid indica si la sesión identifica un negocio y un usuario.
func (t Tenant) Valid() bool {
	return t.BusinessID != "" && t.UserID != ""
}
