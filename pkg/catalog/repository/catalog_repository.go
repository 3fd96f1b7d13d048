package repository

import "conductor/entities"

type CatalogRepository interface {
	All() ([]entities.Crop, error)
	FindByID(id string) (*entities.Crop, error)
	FindByIDs(ids []string) (map[string]entities.Crop, error)
	BulkUpsert([]entities.Crop) error
	Count() (int64, error)
	MaxOrd() (int, error)
}
