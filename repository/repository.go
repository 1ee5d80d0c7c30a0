package repository

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors returned by repositories so callers never depend on
// gorm error values directly.
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateCode = errors.New("duplicate report code")
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateCode
	default:
		return err
	}
}
