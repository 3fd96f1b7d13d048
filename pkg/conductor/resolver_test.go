package conductor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"conductor/entities"
)

func ids(cs []entities.Crop) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.CropID)
	}
	return out
}

func TestCandidatesForRoleFiltersByFrequencyAndRole(t *testing.T) {
	catalog := []entities.Crop{
		crop("basil", entities.Freq528, entities.RoleThird, entities.CategoryAnnual, 8),
		crop("tomato", entities.Freq528, entities.RoleRoot, entities.CategoryAnnual, 24),
		crop("dill", entities.Freq639, entities.RoleThird, entities.CategoryAnnual, 9),
		crop("parsley", entities.Freq528, entities.RoleThird, entities.CategoryAnnual, 6),
	}

	got := CandidatesForRole(catalog, entities.Freq528, entities.RoleThird)
	assert.Equal(t, []string{"basil", "parsley"}, ids(got))
}

func TestCandidatesForRoleEmptyIsNotAnError(t *testing.T) {
	got := CandidatesForRole(scenarioA(), entities.Freq528, entities.RoleSeventh)
	assert.Empty(t, got)
	assert.Empty(t, CandidatesForRole(nil, entities.Freq528, entities.RoleRoot))
}

func TestCandidatesForRoleOverlayAdmitsZoneAgnosticPartners(t *testing.T) {
	catalog := []entities.Crop{
		crop("elder", entities.Freq396, entities.RoleRoot, entities.CategoryTree, 120),
		crop("asparagus", entities.Freq741, entities.RoleFifth, entities.CategoryPerennial, 18),
		crop("nasturtium", entities.Freq852, entities.RoleOverlay, entities.CategoryAnnual, 10),
		crop("wine-cap", entities.Freq417, entities.RoleSeventh, entities.CategoryFungal, 0),
		crop("lettuce", entities.Freq396, entities.RoleThird, entities.CategoryAnnual, 6),
		crop("sunflower", entities.Freq528, entities.RoleAerial, entities.CategoryAnnual, 18),
	}

	aerial := CandidatesForRole(catalog, entities.Freq528, entities.RoleAerial)
	assert.Equal(t, []string{"elder", "asparagus", "nasturtium", "sunflower"}, ids(aerial))

	inoc := CandidatesForRole(catalog, entities.Freq528, entities.RoleInoculant)
	assert.Equal(t, []string{"elder", "asparagus", "nasturtium", "wine-cap"}, ids(inoc))
}

func TestCandidatesForRoleSkipsMalformedRecords(t *testing.T) {
	catalog := []entities.Crop{
		{CropID: "no-frequency", Role: entities.RoleThird, Category: entities.CategoryAnnual, SpacingIn: 6},
		{CropID: "no-category", Frequency: entities.Freq528, Role: entities.RoleThird, SpacingIn: 6},
		{Frequency: entities.Freq528, Role: entities.RoleThird, Category: entities.CategoryAnnual, SpacingIn: 6},
		crop("no-spacing", entities.Freq528, entities.RoleThird, entities.CategoryAnnual, 0),
		crop("ok", entities.Freq528, entities.RoleThird, entities.CategoryAnnual, 6),
	}

	got := CandidatesForRole(catalog, entities.Freq528, entities.RoleThird)
	assert.Equal(t, []string{"ok"}, ids(got))
}
