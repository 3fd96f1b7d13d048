package conductor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"conductor/entities"
)

func TestWaterReductionMultiplier(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.9, WaterReductionMultiplier(true))
		assert.Equal(t, 1.0, WaterReductionMultiplier(false))
	}
}

func TestProjectedYield(t *testing.T) {
	assert.Equal(t, 0.0, ProjectedYield(0, true))
	assert.Equal(t, 0.0, ProjectedYield(-4, true))
	assert.Equal(t, 20.0, ProjectedYield(20, false))
	assert.Equal(t, 23.0, ProjectedYield(20, true))
	assert.Equal(t, 12.5, ProjectedYield(12.5, false))
	assert.Equal(t, 14.0, ProjectedYield(12.5, true))
}

func TestEffectsNeedRootForWaterReduction(t *testing.T) {
	brix := 20.0
	withRoot := []entities.Planting{
		{Role: entities.RoleRoot, CropID: "garlic"},
		{Role: entities.RoleFifth, CropID: "calendula"},
	}

	e := Effects(BedStateFrom(withRoot, true, false, &brix))
	assert.Equal(t, 0.9, e.WaterMultiplier)
	assert.Equal(t, 20.0, e.MeasuredBrix)
	assert.Equal(t, 23.0, e.ProjectedBrix)

	e = Effects(BedStateFrom(withRoot[1:], true, false, &brix))
	assert.Equal(t, 1.0, e.WaterMultiplier)

	e = Effects(BedStateFrom(withRoot, false, false, nil))
	assert.Equal(t, 1.0, e.WaterMultiplier)
	assert.Equal(t, 0.0, e.ProjectedBrix)
}

func TestBedStateCountsDistinctGroundRoles(t *testing.T) {
	s := BedStateFrom([]entities.Planting{
		{Role: entities.RoleRoot},
		{Role: entities.RoleRoot},
		{Role: entities.RoleThird},
		{Role: entities.RoleAerial},
	}, false, true, nil)

	assert.Equal(t, 2, s.GroundFilled())
	assert.Equal(t, 1, s.OverlaysFilled())
	assert.True(t, s.Has(entities.RoleAerial))
	assert.False(t, s.Has(entities.RoleFifth))
	assert.Equal(t, 50, s.Voicing().Percentage)
}
