package repositoryImp

import (
	"gorm.io/gorm"

	"conductor/entities"
	"conductor/pkg/bed/repository"
)

type bedRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.BedRepository { return &bedRepo{db} }

func (r *bedRepo) Create(b *entities.Bed) error { return r.db.Create(b).Error }

func (r *bedRepo) FindByID(id uint, uid string) (*entities.Bed, error) {
	var b entities.Bed
	if err := r.db.Where("bed_id = ? AND user_id = ?", id, uid).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bedRepo) ListByUser(uid string) ([]entities.Bed, error) {
	var bs []entities.Bed
	return bs, r.db.Where("user_id = ?", uid).Order("bed_id ASC").Find(&bs).Error
}

// UpdateOverlays writes both overlay columns; an empty id clears the slot.
func (r *bedRepo) UpdateOverlays(id uint, inoculantCropID, aerialCropID string) error {
	return r.db.Model(&entities.Bed{}).Where("bed_id = ?", id).Updates(map[string]any{
		"inoculant_crop_id": inoculantCropID,
		"aerial_crop_id":    aerialCropID,
	}).Error
}

func (r *bedRepo) UpdateBrix(id uint, brix *float64) error {
	return r.db.Model(&entities.Bed{}).Where("bed_id = ?", id).Update("brix", brix).Error
}
