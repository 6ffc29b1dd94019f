package errors

import (
	"errors"

	"gorm.io/gorm"
)

// ErrOptimisticLock is returned when a record was modified by another operation.
var ErrOptimisticLock = errors.New("record was modified by another operation, refresh and retry")

// IsDuplicateKey reports whether err is a unique-constraint violation.
// Requires gorm.Config.TranslateError on the connection.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
