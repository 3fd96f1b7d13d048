package service

import (
	"errors"

	"conductor/entities"
)

var ErrInvalidReading = errors.New("brix must be between 0 and 40")

type BrixService interface {
	Record(uid string, m *entities.BrixReading) (*entities.BrixReading, error)
	List(bedID uint, uid string) ([]entities.BrixReading, error)
}
