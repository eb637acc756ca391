package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// noRows traduce pgx.ErrNoRows a (nil, nil) siguiendo el contrato de los puertos.
func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// validID indica si id es un UUID. Un id mal formado no existe: se responde sin consultar,
// porque el error de conversión de Postgres abortaría la transacción en curso.
func validID(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern patrón ILIKE "contiene" con los comodines del usuario escapados.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
