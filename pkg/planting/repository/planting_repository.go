package repository

import "conductor/entities"

type PlantingRepository interface {
	Create(p *entities.Planting) error
	ListByBed(bedID uint) ([]entities.Planting, error)
	DeleteByRole(bedID uint, role entities.Role) (int64, error)
}
