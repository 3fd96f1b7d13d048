package conductor

import (
	"math"

	"conductor/entities"
)

const (
	// BedPlantingArea is divided by a crop's spacing to get its plants per bed.
	BedPlantingArea = 96.0
	// AerialPlantsPerBed is the flat density for scattered overstory planting.
	AerialPlantsPerBed = 2
)

// generationOrder is the fixed fill order after Root.
var generationOrder = []entities.Role{
	entities.RoleThird,
	entities.RoleFifth,
	entities.RoleSeventh,
	entities.RoleInoculant,
	entities.RoleAerial,
}

// Candidate pairs an eligible crop with its verdict against the committed set.
type Candidate struct {
	Crop    entities.Crop `json:"crop"`
	Verdict Verdict       `json:"verdict"`
}

// Generate proposes a full chord for a bed tuned to freq around the caller's root.
// It returns nil without a root. Roles with no surviving candidate stay nil.
//
// Candidates are checked against the root and every slot filled earlier in the pass.
// Blocking candidates are dropped, the first clean candidate in catalog order wins,
// and a warning-only candidate is used only when no clean one exists.
func Generate(catalog []entities.Crop, freq entities.Frequency, root *entities.Crop, zones ZoneLookup) *ChordAssignment {
	if root == nil {
		return nil
	}

	chord := &ChordAssignment{Frequency: freq}
	chord.ZoneLabel, chord.MixSetting = zoneInfo(zones, freq)
	chord.Root = &Slot{Crop: *root, PlantCount: PlantCount(*root)}

	used := map[string]bool{root.CropID: true}
	committed := []entities.Crop{*root}

	for _, role := range generationOrder {
		pick, ok := pickCandidate(catalog, freq, role, committed, used)
		if !ok {
			continue
		}
		used[pick.CropID] = true
		committed = append(committed, pick)
		chord.setSlot(role, &Slot{Crop: pick, PlantCount: slotPlantCount(pick, role)})
	}

	chord.finalize()
	return chord
}

// Evaluate lists every candidate for role with its verdict against committed, in
// catalog order. Crops already committed are left out.
func Evaluate(catalog []entities.Crop, freq entities.Frequency, role entities.Role, committed []entities.Crop) []Candidate {
	taken := make(map[string]bool, len(committed))
	for _, c := range committed {
		taken[c.CropID] = true
	}
	var out []Candidate
	for _, c := range CandidatesForRole(catalog, freq, role) {
		if taken[c.CropID] {
			continue
		}
		out = append(out, Candidate{Crop: c, Verdict: CheckConflict(c, committed, freq, role, false)})
	}
	return out
}

func pickCandidate(catalog []entities.Crop, freq entities.Frequency, role entities.Role, committed []entities.Crop, used map[string]bool) (entities.Crop, bool) {
	var fallback *entities.Crop
	for _, c := range CandidatesForRole(catalog, freq, role) {
		if used[c.CropID] {
			continue
		}
		v := CheckConflict(c, committed, freq, role, false)
		if v.Blocks {
			continue
		}
		if !v.IsConflict() {
			return c, true
		}
		if fallback == nil {
			cc := c
			fallback = &cc
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return entities.Crop{}, false
}

// PlantCount is the number of plants a ground-role crop fills a bed with. Never below one.
func PlantCount(c entities.Crop) int {
	if c.SpacingIn <= 0 {
		return 1
	}
	n := int(math.Round(BedPlantingArea / c.SpacingIn))
	if n < 1 {
		return 1
	}
	return n
}

func slotPlantCount(c entities.Crop, role entities.Role) int {
	switch role {
	case entities.RoleAerial:
		return AerialPlantsPerBed
	case entities.RoleInoculant:
		return 0
	}
	return PlantCount(c)
}

func zoneInfo(zones ZoneLookup, freq entities.Frequency) (string, *MixSetting) {
	label := freq.String()
	if zones == nil {
		return label, nil
	}
	z, ok := zones.Zone(freq)
	if !ok {
		return label, nil
	}
	if z.Label != "" {
		label = z.Label
	}
	return label, z.Mix
}
