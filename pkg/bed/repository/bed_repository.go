package repository

import "conductor/entities"

type BedRepository interface {
	Create(b *entities.Bed) error
	FindByID(id uint, uid string) (*entities.Bed, error)
	ListByUser(uid string) ([]entities.Bed, error)
	UpdateOverlays(id uint, inoculantCropID, aerialCropID string) error
	UpdateBrix(id uint, brix *float64) error
}
