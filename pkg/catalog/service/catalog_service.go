package service

import (
	"errors"

	"conductor/entities"
	"conductor/pkg/catalog/importer"
)

var ErrCropNotFound = errors.New("crop not found")

// Filter narrows a catalog listing. With both fields set the listing is the
// candidate list for that role in that zone.
type Filter struct {
	Frequency entities.Frequency
	Role      entities.Role
}

type CatalogService interface {
	Import(res importer.Result) (int, error)
	ImportFile(path string) (importer.Result, error)
	SeedIfEmpty(path string) (int, error)
	List(f Filter) ([]entities.Crop, error)
	Catalog() ([]entities.Crop, error)
	Get(id string) (*entities.Crop, error)
	GetMany(ids []string) (map[string]entities.Crop, error)
}
