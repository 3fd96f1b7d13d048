package conductor

import "conductor/entities"

// CandidatesForRole projects the catalog onto the crops eligible for role in a bed tuned
// to freq. Catalog order is preserved. An empty result means no recommendation, not a
// fault.
//
// Overlay roles also admit zone-agnostic partners: trees, perennials and crops whose
// preferred role is overlay, plus fungal crops for the inoculant slot.
func CandidatesForRole(catalog []entities.Crop, freq entities.Frequency, role entities.Role) []entities.Crop {
	var out []entities.Crop
	for _, c := range catalog {
		if !wellFormed(c, role) {
			continue
		}
		if c.Frequency == freq && c.Role == role {
			out = append(out, c)
			continue
		}
		if role.IsOverlay() && zoneAgnostic(c, role) {
			out = append(out, c)
		}
	}
	return out
}

// wellFormed drops records with missing fields instead of failing on them.
func wellFormed(c entities.Crop, role entities.Role) bool {
	if c.CropID == "" || c.Frequency <= 0 || c.Role == "" || c.Category == "" {
		return false
	}
	if role.IsGround() && c.SpacingIn <= 0 {
		return false
	}
	return true
}

func zoneAgnostic(c entities.Crop, role entities.Role) bool {
	if !role.IsOverlay() {
		return false
	}
	switch {
	case c.Role == entities.RoleOverlay:
		return true
	case c.Category == entities.CategoryTree, c.Category == entities.CategoryPerennial:
		return true
	case role == entities.RoleInoculant && c.Category == entities.CategoryFungal:
		return true
	}
	return false
}

// fitsRole reports whether a crop's preferred role matches the slot it is placed in.
// Overlay-eligible crops fit either overlay slot.
func fitsRole(c entities.Crop, role entities.Role) bool {
	if c.Role == role {
		return true
	}
	return role.IsOverlay() && c.Role == entities.RoleOverlay
}
