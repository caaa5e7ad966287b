package catalog

import (
	"errors"
	"strings"
)

// ErrDuplicate reports an insert that violated a uniqueness constraint, most
// notably a second issue for the same series and number.
var ErrDuplicate = errors.New("duplicate catalog entry")

const (
	sqliteConstraintUnique     = 2067
	sqliteConstraintPrimaryKey = 1555
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) {
		switch coder.Code() {
		case sqliteConstraintUnique, sqliteConstraintPrimaryKey:
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
