package conductor

import (
	"math"

	"conductor/entities"
)

const (
	// WaterReduction is the multiplier applied when an inoculant overlay is present.
	WaterReduction = 0.9
	// FifthYieldBoost scales the measured brix when the Fifth role is filled.
	FifthYieldBoost = 1.15
)

// WaterReductionMultiplier returns 0.9 with an inoculant overlay and 1 otherwise. The
// inoculant type never changes the magnitude.
func WaterReductionMultiplier(hasInoculantOverlay bool) float64 {
	if hasInoculantOverlay {
		return WaterReduction
	}
	return 1
}

// ProjectedYield projects a measured brix value. Zero or missing input projects to zero.
func ProjectedYield(baseMeasuredYield float64, hasFifthFilled bool) float64 {
	if baseMeasuredYield <= 0 {
		return 0
	}
	if !hasFifthFilled {
		return baseMeasuredYield
	}
	return math.Round(baseMeasuredYield * FifthYieldBoost)
}

// BedState is the set of filled roles of a committed bed.
type BedState struct {
	roles        map[entities.Role]bool
	HasInoculant bool
	HasAerial    bool
	Brix         float64
}

// BedStateFrom builds a BedState from committed plantings and the bed's overlay fields.
// Plantings on non-ground roles are ignored.
func BedStateFrom(plantings []entities.Planting, hasInoculant, hasAerial bool, brix *float64) BedState {
	s := BedState{
		roles:        map[entities.Role]bool{},
		HasInoculant: hasInoculant,
		HasAerial:    hasAerial,
	}
	for _, p := range plantings {
		if p.Role.IsGround() {
			s.roles[p.Role] = true
		}
	}
	if brix != nil {
		s.Brix = *brix
	}
	return s
}

func (s BedState) Has(role entities.Role) bool {
	switch role {
	case entities.RoleInoculant:
		return s.HasInoculant
	case entities.RoleAerial:
		return s.HasAerial
	}
	return s.roles[role]
}

func (s BedState) GroundFilled() int { return len(s.roles) }

func (s BedState) OverlaysFilled() int {
	n := 0
	if s.HasInoculant {
		n++
	}
	if s.HasAerial {
		n++
	}
	return n
}

func (s BedState) Voicing() Voicing { return Score(s.GroundFilled(), s.OverlaysFilled()) }

type DerivedEffects struct {
	WaterMultiplier float64 `json:"water_multiplier"`
	MeasuredBrix    float64 `json:"measured_brix"`
	ProjectedBrix   float64 `json:"projected_brix"`
}

// Effects derives the water and yield consequences of a bed's filled roles. The water
// reduction needs both the inoculant overlay and a Root.
func Effects(s BedState) DerivedEffects {
	return DerivedEffects{
		WaterMultiplier: WaterReductionMultiplier(s.HasInoculant && s.Has(entities.RoleRoot)),
		MeasuredBrix:    s.Brix,
		ProjectedBrix:   ProjectedYield(s.Brix, s.Has(entities.RoleFifth)),
	}
}
