package utils

import (
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsPGUniqueViolation reports whether error is PostgreSQL unique constraint violation (code 23505).
func IsPGUniqueViolation(err error) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == "23505"
	}
	return false
}

// FormatProbability renders p the shortest way that parses back to the same float ("0.8", "1", "0.25").
func FormatProbability(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
