package serviceImp

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"conductor/entities"
	bedsvc "conductor/pkg/bed/service"
	catalogsvc "conductor/pkg/catalog/service"
	"conductor/pkg/conductor"
	"conductor/pkg/planting/repository"
	"conductor/pkg/planting/service"
)

type Svc struct {
	r       repository.PlantingRepository
	beds    bedsvc.BedService
	catalog catalogsvc.CatalogService
	zones   conductor.ZoneLookup
	log     *zap.Logger
}

var _ service.PlantingService = (*Svc)(nil)

func New(r repository.PlantingRepository, beds bedsvc.BedService, catalog catalogsvc.CatalogService, zones conductor.ZoneLookup, log *zap.Logger) *Svc {
	if log == nil {
		log = zap.NewNop()
	}
	return &Svc{r: r, beds: beds, catalog: catalog, zones: zones, log: log}
}

// parseRole accepts slot roles only. "overlay" is a crop preference, not a slot.
func parseRole(s string) (entities.Role, error) {
	role, ok := entities.ParseRole(s)
	if !ok || role == entities.RoleOverlay {
		return "", fmt.Errorf("%w: %q", service.ErrInvalidRole, s)
	}
	return role, nil
}

// bedView is a bed with its committed ground plantings.
type bedView struct {
	bed       *entities.Bed
	plantings []entities.Planting
}

func (v *bedView) cropIn(role entities.Role) string {
	switch role {
	case entities.RoleInoculant:
		return v.bed.InoculantCropID
	case entities.RoleAerial:
		return v.bed.AerialCropID
	}
	for _, p := range v.plantings {
		if p.Role == role {
			return p.CropID
		}
	}
	return ""
}

// cropIDs lists committed crop ids, ground roles in role order then overlays.
func (v *bedView) cropIDs(skip entities.Role) []string {
	var ids []string
	for _, r := range append(entities.GroundRoles(), entities.OverlayRoles()...) {
		if r == skip {
			continue
		}
		if id := v.cropIn(r); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func (v *bedView) holds(cropID string) bool {
	for _, id := range v.cropIDs("") {
		if id == cropID {
			return true
		}
	}
	return false
}

func (s *Svc) view(bedID uint, uid string) (*bedView, error) {
	b, err := s.beds.GetBed(bedID, uid)
	if err != nil {
		return nil, err
	}
	ps, err := s.r.ListByBed(b.BedID)
	if err != nil {
		return nil, err
	}
	return &bedView{bed: b, plantings: ps}, nil
}

// committed resolves the bed's crops from the catalog, leaving out the crop in skip.
func (s *Svc) committed(v *bedView, skip entities.Role) ([]entities.Crop, error) {
	ids := v.cropIDs(skip)
	m, err := s.catalog.GetMany(ids)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Crop, 0, len(ids))
	for _, id := range ids {
		c, ok := m[id]
		if !ok {
			s.log.Warn("committed crop missing from catalog", zap.Uint("bed_id", v.bed.BedID), zap.String("crop_id", id))
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Svc) Candidates(bedID uint, uid string, roleName string) ([]conductor.Candidate, error) {
	role, err := parseRole(roleName)
	if err != nil {
		return nil, err
	}
	v, err := s.view(bedID, uid)
	if err != nil {
		return nil, err
	}
	committed, err := s.committed(v, "")
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalog.Catalog()
	if err != nil {
		return nil, err
	}
	return conductor.Evaluate(catalog, v.bed.Frequency, role, committed), nil
}

func (s *Svc) verdicts(v *bedView, cropID string, role entities.Role, override bool) (*entities.Crop, []conductor.Verdict, error) {
	crop, err := s.catalog.Get(cropID)
	if err != nil {
		return nil, nil, err
	}
	committed, err := s.committed(v, role)
	if err != nil {
		return nil, nil, err
	}
	return crop, conductor.CheckAll(*crop, committed, v.bed.Frequency, role, override), nil
}

func (s *Svc) Check(bedID uint, uid string, req service.AcceptRequest) ([]conductor.Verdict, error) {
	role, err := parseRole(req.Role)
	if err != nil {
		return nil, err
	}
	v, err := s.view(bedID, uid)
	if err != nil {
		return nil, err
	}
	_, vs, err := s.verdicts(v, req.CropID, role, req.Override)
	return vs, err
}

// gate turns verdicts into an accept decision. Blocking verdicts always stop the accept;
// warnings need an explicit override.
func gate(vs []conductor.Verdict, override bool) error {
	w := conductor.Worst(vs)
	switch {
	case w.Blocks:
		return &service.GateError{Err: service.ErrConflictBlocked, Verdict: w}
	case w.IsConflict() && !override:
		return &service.GateError{Err: service.ErrOverrideRequired, Verdict: w}
	}
	return nil
}

func (s *Svc) Accept(bedID uint, uid string, req service.AcceptRequest) (*service.Accepted, error) {
	role, err := parseRole(req.Role)
	if err != nil {
		return nil, err
	}
	v, err := s.view(bedID, uid)
	if err != nil {
		return nil, err
	}
	if v.cropIn(role) != "" {
		return nil, fmt.Errorf("%w: %s", service.ErrRoleTaken, role)
	}
	if v.holds(req.CropID) {
		return nil, fmt.Errorf("%w: %s", service.ErrAlreadyPlanted, req.CropID)
	}
	crop, vs, err := s.verdicts(v, req.CropID, role, req.Override)
	if err != nil {
		return nil, err
	}
	if err := gate(vs, req.Override); err != nil {
		w := conductor.Worst(vs)
		s.log.Info("planting refused",
			zap.Uint("bed_id", v.bed.BedID),
			zap.String("crop_id", crop.CropID),
			zap.String("role", string(role)),
			zap.String("kind", string(w.Kind)),
			zap.String("severity", string(w.Severity)))
		return nil, err
	}

	out := &service.Accepted{Role: role, Crop: *crop, Verdicts: vs}
	if role.IsOverlay() {
		inoc, aerial := v.bed.InoculantCropID, v.bed.AerialCropID
		if role == entities.RoleInoculant {
			inoc = crop.CropID
		} else {
			aerial = crop.CropID
		}
		if _, err := s.beds.SetOverlays(v.bed.BedID, uid, inoc, aerial); err != nil {
			return nil, err
		}
	} else {
		p := &entities.Planting{BedID: v.bed.BedID, Role: role, CropID: crop.CropID, PlantCount: conductor.PlantCount(*crop)}
		if err := s.r.Create(p); err != nil {
			if isDuplicate(err) {
				return nil, fmt.Errorf("%w: %s", service.ErrRoleTaken, role)
			}
			return nil, err
		}
		out.Planting = p
	}
	s.log.Info("planting accepted",
		zap.Uint("bed_id", v.bed.BedID),
		zap.String("crop_id", crop.CropID),
		zap.String("role", string(role)),
		zap.Bool("override", req.Override))
	return out, nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

func (s *Svc) Remove(bedID uint, uid string, roleName string) error {
	role, err := parseRole(roleName)
	if err != nil {
		return err
	}
	v, err := s.view(bedID, uid)
	if err != nil {
		return err
	}
	if role.IsOverlay() {
		if v.cropIn(role) == "" {
			return fmt.Errorf("%w: %s", service.ErrRoleEmpty, role)
		}
		inoc, aerial := v.bed.InoculantCropID, v.bed.AerialCropID
		if role == entities.RoleInoculant {
			inoc = ""
		} else {
			aerial = ""
		}
		if _, err := s.beds.SetOverlays(v.bed.BedID, uid, inoc, aerial); err != nil {
			return err
		}
	} else {
		n, err := s.r.DeleteByRole(v.bed.BedID, role)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", service.ErrRoleEmpty, role)
		}
	}
	s.log.Info("planting removed", zap.Uint("bed_id", v.bed.BedID), zap.String("role", string(role)))
	return nil
}

// SetOverlays replaces both overlay slots in one call. New crops are gated like any accept;
// the aerial pick is checked against the inoculant chosen in the same call.
func (s *Svc) SetOverlays(bedID uint, uid string, req service.OverlayRequest) (*entities.Bed, []conductor.Verdict, error) {
	v, err := s.view(bedID, uid)
	if err != nil {
		return nil, nil, err
	}
	var all []conductor.Verdict
	apply := func(role entities.Role, want *string, set func(string)) error {
		if want == nil {
			return nil
		}
		id := strings.TrimSpace(*want)
		if id == "" || id == v.cropIn(role) {
			set(id)
			return nil
		}
		if v.holds(id) {
			return fmt.Errorf("%w: %s", service.ErrAlreadyPlanted, id)
		}
		_, vs, err := s.verdicts(v, id, role, req.Override)
		if err != nil {
			return err
		}
		all = append(all, vs...)
		if err := gate(vs, req.Override); err != nil {
			return err
		}
		set(id)
		return nil
	}
	if err := apply(entities.RoleInoculant, req.InoculantCropID, func(id string) { v.bed.InoculantCropID = id }); err != nil {
		return nil, all, err
	}
	if err := apply(entities.RoleAerial, req.AerialCropID, func(id string) { v.bed.AerialCropID = id }); err != nil {
		return nil, all, err
	}
	b, err := s.beds.SetOverlays(v.bed.BedID, uid, v.bed.InoculantCropID, v.bed.AerialCropID)
	if err != nil {
		return nil, all, err
	}
	return b, all, nil
}

// Propose runs the chord generator around rootCropID, or around the bed's committed
// Root when rootCropID is empty. Nothing is persisted.
func (s *Svc) Propose(bedID uint, uid string, rootCropID string) (*conductor.ChordAssignment, error) {
	v, err := s.view(bedID, uid)
	if err != nil {
		return nil, err
	}
	if rootCropID == "" {
		rootCropID = v.cropIn(entities.RoleRoot)
	}
	if rootCropID == "" {
		return nil, fmt.Errorf("%w: %s", service.ErrRoleEmpty, entities.RoleRoot)
	}
	root, err := s.catalog.Get(rootCropID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalog.Catalog()
	if err != nil {
		return nil, err
	}
	return conductor.Generate(catalog, v.bed.Frequency, root, s.zones), nil
}

func (s *Svc) Voicing(bedID uint, uid string) (*service.VoicingReport, error) {
	v, err := s.view(bedID, uid)
	if err != nil {
		return nil, err
	}
	b := v.bed
	state := conductor.BedStateFrom(v.plantings, b.InoculantCropID != "", b.AerialCropID != "", b.Brix)
	label := b.Frequency.String()
	if s.zones != nil {
		if z, ok := s.zones.Zone(b.Frequency); ok && z.Label != "" {
			label = z.Label
		}
	}
	return &service.VoicingReport{
		BedID:           b.BedID,
		Frequency:       b.Frequency,
		ZoneLabel:       label,
		Voicing:         state.Voicing(),
		Effects:         conductor.Effects(state),
		Plantings:       v.plantings,
		InoculantCropID: b.InoculantCropID,
		AerialCropID:    b.AerialCropID,
	}, nil
}
