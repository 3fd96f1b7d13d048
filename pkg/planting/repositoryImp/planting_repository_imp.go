package repositoryImp

import (
	"gorm.io/gorm"

	"conductor/entities"
	"conductor/pkg/planting/repository"
)

type plantingRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlantingRepository { return &plantingRepo{db} }

func (r *plantingRepo) Create(p *entities.Planting) error { return r.db.Create(p).Error }

func (r *plantingRepo) ListByBed(bedID uint) ([]entities.Planting, error) {
	var out []entities.Planting
	if err := r.db.Where("bed_id = ?", bedID).Order("planting_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *plantingRepo) DeleteByRole(bedID uint, role entities.Role) (int64, error) {
	res := r.db.Where("bed_id = ? AND role = ?", bedID, role).Delete(&entities.Planting{})
	return res.RowsAffected, res.Error
}
