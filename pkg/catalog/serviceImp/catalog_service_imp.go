package serviceImp

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"conductor/entities"
	"conductor/pkg/catalog/importer"
	"conductor/pkg/catalog/repository"
	"conductor/pkg/catalog/service"
	"conductor/pkg/conductor"
)

type Svc struct {
	r   repository.CatalogRepository
	log *zap.Logger
}

func New(r repository.CatalogRepository, log *zap.Logger) *Svc {
	if log == nil {
		log = zap.NewNop()
	}
	return &Svc{r: r, log: log}
}

var _ service.CatalogService = (*Svc)(nil)

// Import upserts the imported crops. Known ids keep their catalog position; new ids
// are appended after the current last crop in source order.
func (s *Svc) Import(res importer.Result) (int, error) {
	if len(res.Crops) == 0 {
		return 0, nil
	}
	ids := make([]string, len(res.Crops))
	for i, c := range res.Crops {
		ids[i] = c.CropID
	}
	existing, err := s.r.FindByIDs(ids)
	if err != nil {
		return 0, err
	}
	next, err := s.r.MaxOrd()
	if err != nil {
		return 0, err
	}
	next++

	// the last row wins when a source repeats an id
	seen := map[string]int{}
	rows := make([]entities.Crop, 0, len(res.Crops))
	for _, c := range res.Crops {
		if i, ok := seen[c.CropID]; ok {
			c.Ord = rows[i].Ord
			rows[i] = c
			continue
		}
		if old, ok := existing[c.CropID]; ok {
			c.Ord = old.Ord
		} else {
			c.Ord = next
			next++
		}
		seen[c.CropID] = len(rows)
		rows = append(rows, c)
	}
	if err := s.r.BulkUpsert(rows); err != nil {
		return 0, fmt.Errorf("upsert crops: %w", err)
	}
	s.log.Info("catalog imported", zap.Int("crops", len(rows)), zap.Int("skipped", len(res.Skipped)))
	return len(rows), nil
}

func (s *Svc) ImportFile(path string) (importer.Result, error) {
	res, err := importer.FromFile(path, s.log)
	if err != nil {
		return res, err
	}
	if _, err := s.Import(res); err != nil {
		return res, err
	}
	return res, nil
}

// SeedIfEmpty imports path only when the catalog has no crops.
func (s *Svc) SeedIfEmpty(path string) (int, error) {
	if path == "" {
		return 0, nil
	}
	n, err := s.r.Count()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	res, err := s.ImportFile(path)
	if err != nil {
		return 0, fmt.Errorf("seed %s: %w", path, err)
	}
	return len(res.Crops), nil
}

func (s *Svc) Catalog() ([]entities.Crop, error) { return s.r.All() }

func (s *Svc) List(f service.Filter) ([]entities.Crop, error) {
	all, err := s.r.All()
	if err != nil {
		return nil, err
	}
	switch {
	case f.Frequency != 0 && f.Role != "":
		return conductor.CandidatesForRole(all, f.Frequency, f.Role), nil
	case f.Frequency != 0:
		return keep(all, func(c entities.Crop) bool { return c.Frequency == f.Frequency }), nil
	case f.Role != "":
		return keep(all, func(c entities.Crop) bool { return c.Role == f.Role }), nil
	}
	return all, nil
}

func keep(cs []entities.Crop, ok func(entities.Crop) bool) []entities.Crop {
	out := make([]entities.Crop, 0, len(cs))
	for _, c := range cs {
		if ok(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Svc) Get(id string) (*entities.Crop, error) {
	c, err := s.r.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", service.ErrCropNotFound, id)
	}
	return c, err
}

func (s *Svc) GetMany(ids []string) (map[string]entities.Crop, error) {
	return s.r.FindByIDs(ids)
}
