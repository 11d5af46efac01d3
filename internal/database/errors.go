package database

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means the referenced book, user, card or loan does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a uniqueness rule was violated (duplicate ISBN,
	// username, or card).
	ErrConflict = errors.New("record conflicts with an existing one")
)

// Classify maps a raw persistence error onto the store taxonomy so callers can
// distinguish "nothing matched" from "duplicate" from "store failure".
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return ErrConflict
		}
		if sqliteErr.Code == sqlite3.ErrConstraint {
			return ErrConflict
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}
