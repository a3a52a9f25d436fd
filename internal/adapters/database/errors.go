package database

import (
	"errors"

	"inkwell/internal/core/apperror"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// translate maps gorm's missing-row error onto apperror.ErrNotFound.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	return err
}

// parseID rejects malformed ids as not found, the same way a lookup miss is reported.
func parseID(id string) (uuid.UUID, error) {
	u, err := uuid.FromString(id)
	if err != nil {
		return uuid.Nil, apperror.ErrNotFound
	}
	return u, nil
}
