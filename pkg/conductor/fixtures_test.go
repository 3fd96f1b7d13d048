package conductor

import "conductor/entities"

func crop(id string, freq entities.Frequency, role entities.Role, cat entities.Category, spacing float64, tags ...string) entities.Crop {
	return entities.Crop{
		CropID:       id,
		Name:         id,
		Frequency:    freq,
		Role:         role,
		Category:     cat,
		SpacingIn:    spacing,
		ConflictTags: tags,
		Instrument:   "cello",
	}
}

type zoneTable map[entities.Frequency]Zone

func (z zoneTable) Zone(f entities.Frequency) (Zone, bool) {
	v, ok := z[f]
	return v, ok
}

// scenarioA: one Root and one Third at 528 Hz, nothing else in that zone.
func scenarioA() []entities.Crop {
	return []entities.Crop{
		crop("garlic", entities.Freq528, entities.RoleRoot, entities.CategoryAnnual, 12),
		crop("chamomile", entities.Freq528, entities.RoleThird, entities.CategoryAnnual, 6),
		crop("borage", entities.Freq639, entities.RoleFifth, entities.CategoryAnnual, 18),
	}
}
