package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}

// isDuplicateColumn verifica si un error es por columna ya existente (42701).
// Las migraciones aditivas lo ignoran: re-ejecutar el bootstrap es inocuo.
func isDuplicateColumn(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42701" // duplicate_column
}
