package ports

import "context"

// RecentTracker define el puerto de salida para marcar artículos modificados recientemente.
// Es estado de presentación con expiración: no forma parte del modelo persistente y
// una falla aquí nunca debe revertir una operación ya confirmada.
type RecentTracker interface {
	// Touch marca los artículos como recién modificados en el negocio.
	Touch(ctx context.Context, businessID string, itemIDs []string) error
	// List devuelve los artículos marcados cuya expiración no ha vencido.
	List(ctx context.Context, businessID string) ([]string, error)
}
