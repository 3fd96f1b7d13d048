package repositoryImp

import (
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"conductor/entities"
	"conductor/pkg/catalog/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CatalogRepository { return &repo{db} }

// All returns the catalog in catalog order.
func (r *repo) All() ([]entities.Crop, error) {
	var cs []entities.Crop
	return cs, r.db.Order("ord ASC, crop_id ASC").Find(&cs).Error
}

func (r *repo) FindByID(id string) (*entities.Crop, error) {
	var c entities.Crop
	if err := r.db.Where("crop_id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) FindByIDs(ids []string) (map[string]entities.Crop, error) {
	if len(ids) == 0 {
		return map[string]entities.Crop{}, nil
	}
	var cs []entities.Crop
	if err := r.db.Where("crop_id IN ?", ids).Find(&cs).Error; err != nil {
		return nil, err
	}
	m := make(map[string]entities.Crop, len(cs))
	for i := range cs {
		m[cs[i].CropID] = cs[i]
	}
	return m, nil
}

func (r *repo) BulkUpsert(cs []entities.Crop) error {
	if len(cs) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "crop_id"}},
		UpdateAll: true,
	}).CreateInBatches(&cs, 200).Error
}

func (r *repo) Count() (int64, error) {
	var n int64
	return n, r.db.Model(&entities.Crop{}).Count(&n).Error
}

func (r *repo) MaxOrd() (int, error) {
	var n sql.NullInt64
	if err := r.db.Model(&entities.Crop{}).Select("MAX(ord)").Row().Scan(&n); err != nil {
		return 0, err
	}
	if !n.Valid {
		return -1, nil
	}
	return int(n.Int64), nil
}
