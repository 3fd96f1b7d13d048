package repositoryImp

import (
	"gorm.io/gorm"

	"conductor/entities"
	"conductor/pkg/brix/repository"
)

type brixRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.BrixRepository { return &brixRepo{db} }

func (r *brixRepo) Create(m *entities.BrixReading) error { return r.db.Create(m).Error }

func (r *brixRepo) ListByBed(bedID uint) ([]entities.BrixReading, error) {
	var out []entities.BrixReading
	if err := r.db.Where("bed_id = ?", bedID).Order("date ASC, reading_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *brixRepo) Latest(bedID uint) (*entities.BrixReading, error) {
	var m entities.BrixReading
	if err := r.db.Where("bed_id = ?", bedID).Order("date DESC, reading_id DESC").First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
