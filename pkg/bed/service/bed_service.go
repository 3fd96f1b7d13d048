package service

import (
	"errors"

	"conductor/entities"
)

var (
	ErrBedNotFound      = errors.New("bed not found")
	ErrInvalidFrequency = errors.New("bed frequency must be one of 396, 417, 528, 639, 741, 852")
)

type BedService interface {
	CreateBed(b *entities.Bed) (*entities.Bed, error)
	GetBed(id uint, uid string) (*entities.Bed, error)
	ListBeds(uid string) ([]entities.Bed, error)
	SetOverlays(id uint, uid, inoculantCropID, aerialCropID string) (*entities.Bed, error)
	SetBrix(id uint, uid string, brix *float64) error
}
