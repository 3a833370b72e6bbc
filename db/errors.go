package db

import (
	"errors"
	"strings"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const pqUniqueViolation = "23505"

// IsUniqueViolation reconhece a violação de índice único nos dois dialetos suportados.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation
	}

	// gorm.Errors agrega várias falhas e não implementa Unwrap
	var many gorm.Errors
	if errors.As(err, &many) {
		for _, e := range many {
			if IsUniqueViolation(e) {
				return true
			}
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// IsNotFound é um atalho para gorm.IsRecordNotFoundError.
func IsNotFound(err error) bool {
	return gorm.IsRecordNotFoundError(err)
}
