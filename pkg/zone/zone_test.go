package zone

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conductor/entities"
)

func TestDefaultsCoverEveryFrequency(t *testing.T) {
	tbl := Defaults()
	for _, f := range entities.Frequencies() {
		z, ok := tbl.Zone(f)
		require.True(t, ok, f.String())
		assert.NotEmpty(t, z.Label)
		assert.NotNil(t, z.Mix)
	}
	_, ok := tbl.Zone(432)
	assert.False(t, ok)
	assert.Len(t, tbl.All(), len(entities.Frequencies()))
	assert.Equal(t, len(entities.Frequencies()), tbl.Len())
}

func TestNilTableLookup(t *testing.T) {
	var tbl *Table
	_, ok := tbl.Zone(entities.Freq528)
	assert.False(t, ok)
	assert.Zero(t, tbl.Len())
}

func TestLoadFileYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`zones:
  - frequency: 528
    label: Heart Garden
    mix:
      name: castings
      blend: "1:1"
  - frequency: 639
  - frequency: 432
    label: ignored
`), 0o644))

	tbl, err := LoadFile(path)
	require.NoError(t, err)

	z, _ := tbl.Zone(entities.Freq528)
	assert.Equal(t, "Heart Garden", z.Label)
	assert.Equal(t, "1:1", z.Mix.Blend)

	z, _ = tbl.Zone(entities.Freq639)
	assert.Equal(t, "Connection", z.Label, "blank label keeps the default")

	_, ok := tbl.Zone(432)
	assert.False(t, ok)
}

func TestLoadFileCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.csv")
	require.NoError(t, os.WriteFile(path, []byte("Frequency,Label,Mix Name,Blend\n741 Hz,Salt Marsh,grit,2:1\nnope,Bad,,\n"), 0o644))

	tbl, err := LoadFile(path)
	require.NoError(t, err)
	z, _ := tbl.Zone(entities.Freq741)
	assert.Equal(t, "Salt Marsh", z.Label)
	assert.Equal(t, "grit", z.Mix.Name)
}

func TestLoadFileRequiresFrequencyColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.csv")
	require.NoError(t, os.WriteFile(path, []byte("label\nHeart\n"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileEmptyPathUsesDefaults(t *testing.T) {
	tbl, err := LoadFile("")
	require.NoError(t, err)
	z, _ := tbl.Zone(entities.Freq396)
	assert.Equal(t, "Grounding", z.Label)
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	require.NoError(t, os.WriteFile(path, []byte("zones:\n  - frequency: 528\n    label: Before\n"), 0o644))
	tbl, err := LoadFile(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, Watch(ctx, path, tbl, nil))

	require.NoError(t, os.WriteFile(path, []byte("zones:\n  - frequency: 528\n    label: After\n"), 0o644))
	assert.Eventually(t, func() bool {
		z, _ := tbl.Zone(entities.Freq528)
		return z.Label == "After"
	}, 2*time.Second, 20*time.Millisecond)

	// a broken file keeps the last good table
	require.NoError(t, os.WriteFile(path, []byte("zones: [\n"), 0o644))
	time.Sleep(100 * time.Millisecond)
	z, _ := tbl.Zone(entities.Freq528)
	assert.Equal(t, "After", z.Label)
}
