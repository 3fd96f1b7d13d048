package serviceImp

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conductor/database"
	"conductor/entities"
	bedRepoImp "conductor/pkg/bed/repositoryImp"
	bedsvc "conductor/pkg/bed/service"
	bedSvcImp "conductor/pkg/bed/serviceImp"
	"conductor/pkg/catalog/importer"
	catRepoImp "conductor/pkg/catalog/repositoryImp"
	catSvcImp "conductor/pkg/catalog/serviceImp"
	"conductor/pkg/conductor"
	"conductor/pkg/planting/repositoryImp"
	"conductor/pkg/planting/service"
	"conductor/pkg/zone"
)

type fixture struct {
	svc  *Svc
	beds bedsvc.BedService
	bed  *entities.Bed
}

func crop(id string, f entities.Frequency, role entities.Role, cat entities.Category, spacing float64, tags ...string) entities.Crop {
	return entities.Crop{CropID: id, Name: id, Frequency: f, Role: role, Category: cat, SpacingIn: spacing, ConflictTags: tags}
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "planting.db"))
	require.NoError(t, err)

	cat := catSvcImp.New(catRepoImp.New(db), nil)
	_, err = cat.Import(importer.Result{Crops: []entities.Crop{
		crop("squash", entities.Freq528, entities.RoleRoot, entities.CategoryAnnual, 24, "nutritional:heavy-feeder"),
		crop("bean", entities.Freq528, entities.RoleThird, entities.CategoryAnnual, 6),
		crop("pumpkin", entities.Freq528, entities.RoleThird, entities.CategoryAnnual, 24, "nutritional:heavy-feeder"),
		crop("corn", entities.Freq528, entities.RoleFifth, entities.CategoryAnnual, 12),
		crop("beet", entities.Freq396, entities.RoleRoot, entities.CategoryAnnual, 4),
		crop("myco", entities.Freq396, entities.RoleOverlay, entities.CategoryFungal, 0),
		crop("walnut", entities.Freq396, entities.RoleOverlay, entities.CategoryTree, 0),
	}})
	require.NoError(t, err)

	beds := bedSvcImp.NewBedService(bedRepoImp.New(db))
	b, err := beds.CreateBed(&entities.Bed{UserID: "u1", Name: "north", Frequency: entities.Freq528})
	require.NoError(t, err)

	return fixture{
		svc:  New(repositoryImp.New(db), beds, cat, zone.Defaults(), nil),
		beds: beds,
		bed:  b,
	}
}

func (f fixture) accept(t *testing.T, cropID, role string, override bool) (*service.Accepted, error) {
	t.Helper()
	return f.svc.Accept(f.bed.BedID, "u1", service.AcceptRequest{CropID: cropID, Role: role, Override: override})
}

func TestAcceptGroundRole(t *testing.T) {
	f := newFixture(t)
	got, err := f.accept(t, "squash", "root", false)
	require.NoError(t, err)
	require.NotNil(t, got.Planting)
	assert.Equal(t, 4, got.Planting.PlantCount)

	_, err = f.accept(t, "bean", "root", false)
	assert.ErrorIs(t, err, service.ErrRoleTaken)

	_, err = f.accept(t, "squash", "third", false)
	assert.ErrorIs(t, err, service.ErrAlreadyPlanted)
}

func TestAcceptWarningNeedsOverride(t *testing.T) {
	f := newFixture(t)
	_, err := f.accept(t, "squash", "root", false)
	require.NoError(t, err)

	_, err = f.accept(t, "pumpkin", "third", false)
	require.ErrorIs(t, err, service.ErrOverrideRequired)
	var ge *service.GateError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, conductor.ConflictNutritional, ge.Verdict.Kind)
	assert.Equal(t, "squash", ge.Verdict.ConflictsWith)

	got, err := f.accept(t, "pumpkin", "third", true)
	require.NoError(t, err)
	assert.Equal(t, conductor.SeverityWarning, conductor.Worst(got.Verdicts).Severity)
}

func TestAcceptFrequencyMismatchBlocksUnlessOverridden(t *testing.T) {
	f := newFixture(t)
	_, err := f.accept(t, "beet", "root", false)
	require.ErrorIs(t, err, service.ErrConflictBlocked)

	got, err := f.accept(t, "beet", "root", true)
	require.NoError(t, err)
	require.Len(t, got.Verdicts, 1)
	assert.Equal(t, conductor.ConflictFrequency, got.Verdicts[0].Kind)
	assert.False(t, got.Verdicts[0].Blocks)
}

func TestAcceptRejectsUnknownInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.accept(t, "squash", "overlay", false)
	assert.ErrorIs(t, err, service.ErrInvalidRole)

	_, err = f.accept(t, "nope", "root", false)
	assert.Error(t, err)

	_, err = f.svc.Accept(f.bed.BedID, "u2", service.AcceptRequest{CropID: "squash", Role: "root"})
	assert.ErrorIs(t, err, bedsvc.ErrBedNotFound)
}

func TestOverlayAcceptAndRemove(t *testing.T) {
	f := newFixture(t)
	_, err := f.accept(t, "squash", "root", false)
	require.NoError(t, err)
	_, err = f.accept(t, "myco", "inoculant", false)
	require.NoError(t, err)

	b, err := f.beds.GetBed(f.bed.BedID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "myco", b.InoculantCropID)

	_, err = f.accept(t, "walnut", "inoculant", false)
	assert.ErrorIs(t, err, service.ErrRoleTaken)

	require.NoError(t, f.svc.Remove(f.bed.BedID, "u1", "inoculant"))
	assert.ErrorIs(t, f.svc.Remove(f.bed.BedID, "u1", "inoculant"), service.ErrRoleEmpty)
}

func TestSetOverlays(t *testing.T) {
	f := newFixture(t)
	myco, walnut := "myco", "walnut"
	b, vs, err := f.svc.SetOverlays(f.bed.BedID, "u1", service.OverlayRequest{InoculantCropID: &myco, AerialCropID: &walnut})
	require.NoError(t, err)
	assert.Equal(t, "myco", b.InoculantCropID)
	assert.Equal(t, "walnut", b.AerialCropID)
	assert.Len(t, vs, 2)

	clear := ""
	b, _, err = f.svc.SetOverlays(f.bed.BedID, "u1", service.OverlayRequest{AerialCropID: &clear})
	require.NoError(t, err)
	assert.Equal(t, "myco", b.InoculantCropID, "nil keeps the current crop")
	assert.Empty(t, b.AerialCropID)

	_, _, err = f.svc.SetOverlays(f.bed.BedID, "u1", service.OverlayRequest{AerialCropID: &myco})
	assert.ErrorIs(t, err, service.ErrAlreadyPlanted)
}

func TestRemoveGroundRole(t *testing.T) {
	f := newFixture(t)
	_, err := f.accept(t, "squash", "root", false)
	require.NoError(t, err)

	require.NoError(t, f.svc.Remove(f.bed.BedID, "u1", "root"))
	assert.ErrorIs(t, f.svc.Remove(f.bed.BedID, "u1", "root"), service.ErrRoleEmpty)

	_, err = f.accept(t, "squash", "root", false)
	assert.NoError(t, err, "a removed role can be filled again")
}

func TestCandidatesAndCheck(t *testing.T) {
	f := newFixture(t)
	_, err := f.accept(t, "squash", "root", false)
	require.NoError(t, err)

	cs, err := f.svc.Candidates(f.bed.BedID, "u1", "3rd")
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Equal(t, "bean", cs[0].Crop.CropID)
	assert.False(t, cs[0].Verdict.IsConflict())
	assert.Equal(t, conductor.ConflictNutritional, cs[1].Verdict.Kind)

	vs, err := f.svc.Check(f.bed.BedID, "u1", service.AcceptRequest{CropID: "pumpkin", Role: "third"})
	require.NoError(t, err)
	assert.Equal(t, conductor.ConflictNutritional, conductor.Worst(vs).Kind)
}

func TestPropose(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Propose(f.bed.BedID, "u1", "")
	assert.ErrorIs(t, err, service.ErrRoleEmpty)

	chord, err := f.svc.Propose(f.bed.BedID, "u1", "squash")
	require.NoError(t, err)
	assert.Equal(t, "Heart", chord.ZoneLabel)
	require.NotNil(t, chord.Third)
	assert.Equal(t, "bean", chord.Third.Crop.CropID)
	require.NotNil(t, chord.Fifth)
	assert.Equal(t, "corn", chord.Fifth.Crop.CropID)
	assert.Nil(t, chord.Seventh)
	require.NotNil(t, chord.Inoculant)
	assert.Equal(t, "myco", chord.Inoculant.Crop.CropID)
	require.NotNil(t, chord.Aerial)
	assert.Equal(t, "walnut", chord.Aerial.Crop.CropID)
	assert.False(t, chord.Complete)
	assert.Equal(t, 4+16+8, chord.TotalPlants)
}

func TestVoicingReport(t *testing.T) {
	f := newFixture(t)
	for _, p := range [][2]string{{"squash", "root"}, {"bean", "third"}, {"corn", "fifth"}, {"myco", "inoculant"}} {
		_, err := f.accept(t, p[0], p[1], false)
		require.NoError(t, err, p[0])
	}
	brix := 20.0
	require.NoError(t, f.beds.SetBrix(f.bed.BedID, "u1", &brix))

	r, err := f.svc.Voicing(f.bed.BedID, "u1")
	require.NoError(t, err)
	assert.Equal(t, conductor.LevelSeventh, r.Voicing.Level)
	assert.Equal(t, 67, r.Voicing.Percentage)
	assert.Equal(t, 0.9, r.Effects.WaterMultiplier)
	assert.Equal(t, 23.0, r.Effects.ProjectedBrix)
	assert.Len(t, r.Plantings, 3)
}
