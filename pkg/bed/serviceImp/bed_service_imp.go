package serviceImp

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"conductor/entities"
	repo "conductor/pkg/bed/repository"
	"conductor/pkg/bed/service"
)

type bedSvc struct{ r repo.BedRepository }

func NewBedService(r repo.BedRepository) service.BedService { return &bedSvc{r} }

func (s *bedSvc) CreateBed(b *entities.Bed) (*entities.Bed, error) {
	if !b.Frequency.Valid() {
		return nil, service.ErrInvalidFrequency
	}
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		b.Name = b.Frequency.String() + " bed"
	}
	if err := s.r.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *bedSvc) GetBed(id uint, uid string) (*entities.Bed, error) {
	b, err := s.r.FindByID(id, uid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", service.ErrBedNotFound, id)
	}
	return b, err
}

func (s *bedSvc) ListBeds(uid string) ([]entities.Bed, error) { return s.r.ListByUser(uid) }

func (s *bedSvc) SetOverlays(id uint, uid, inoculantCropID, aerialCropID string) (*entities.Bed, error) {
	b, err := s.GetBed(id, uid)
	if err != nil {
		return nil, err
	}
	if err := s.r.UpdateOverlays(b.BedID, inoculantCropID, aerialCropID); err != nil {
		return nil, err
	}
	b.InoculantCropID, b.AerialCropID = inoculantCropID, aerialCropID
	return b, nil
}

func (s *bedSvc) SetBrix(id uint, uid string, brix *float64) error {
	b, err := s.GetBed(id, uid)
	if err != nil {
		return err
	}
	return s.r.UpdateBrix(b.BedID, brix)
}
