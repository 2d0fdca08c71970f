package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JahongirOfficial/climart-sub004/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isSerializationFailure verifica si un error es un fallo de serialización o
// interbloqueo (40001 / 40P01): el caller debe reintentar la operación completa
// con el mismo payload.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// mapConcurrencyError traduce fallos de serialización a domain.ErrConflict para
// que la capa de aplicación decida el reintento; el resto pasa sin tocar.
func mapConcurrencyError(err error) error {
	if err == nil {
		return nil
	}
	if isSerializationFailure(err) {
		return domain.ErrConflict
	}
	return err
}
