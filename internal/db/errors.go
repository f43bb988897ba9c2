package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgInvalidTextEncoding = "22P02"
)

// IsUniqueViolation recognizes unique-constraint failures from Postgres,
// whether or not gorm translated them, and from the SQLite driver used in
// tests.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsInvalidID reports whether Postgres rejected a value that is not a valid
// uuid, which happens when a path id is malformed.
func IsInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextEncoding
}

// IsNotFound treats malformed ids the same as missing rows.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || IsInvalidID(err)
}

// Affected reports whether a write touched any row.
func Affected(result *gorm.DB) (bool, error) {
	if result.Error != nil {
		if IsInvalidID(result.Error) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
