package repository

import "conductor/entities"

type BrixRepository interface {
	Create(r *entities.BrixReading) error
	ListByBed(bedID uint) ([]entities.BrixReading, error)
	Latest(bedID uint) (*entities.BrixReading, error)
}
