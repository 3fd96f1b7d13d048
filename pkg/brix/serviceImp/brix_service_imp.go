package serviceImp

import (
	"time"

	"go.uber.org/zap"

	"conductor/entities"
	bedsvc "conductor/pkg/bed/service"
	repo "conductor/pkg/brix/repository"
	"conductor/pkg/brix/service"
)

// MaxBrix bounds what a refractometer reading can plausibly be.
const MaxBrix = 40.0

type brixSvc struct {
	r    repo.BrixRepository
	beds bedsvc.BedService
	log  *zap.Logger
}

func NewBrixService(r repo.BrixRepository, beds bedsvc.BedService, log *zap.Logger) service.BrixService {
	if log == nil {
		log = zap.NewNop()
	}
	return &brixSvc{r: r, beds: beds, log: log}
}

// Record stores a reading and syncs the bed's measured brix to its newest reading.
// A reading without a date is taken now.
func (s *brixSvc) Record(uid string, m *entities.BrixReading) (*entities.BrixReading, error) {
	if m.Brix < 0 || m.Brix > MaxBrix {
		return nil, service.ErrInvalidReading
	}
	if m.Date.IsZero() {
		m.Date = time.Now()
	}
	if _, err := s.beds.GetBed(m.BedID, uid); err != nil {
		return nil, err
	}
	if err := s.r.Create(m); err != nil {
		return nil, err
	}
	latest, err := s.r.Latest(m.BedID)
	if err != nil {
		return nil, err
	}
	if err := s.beds.SetBrix(m.BedID, uid, &latest.Brix); err != nil {
		return nil, err
	}
	s.log.Info("brix recorded", zap.Uint("bed_id", m.BedID), zap.Float64("brix", m.Brix), zap.Float64("bed_brix", latest.Brix))
	return m, nil
}

func (s *brixSvc) List(bedID uint, uid string) ([]entities.BrixReading, error) {
	if _, err := s.beds.GetBed(bedID, uid); err != nil {
		return nil, err
	}
	return s.r.ListByBed(bedID)
}
