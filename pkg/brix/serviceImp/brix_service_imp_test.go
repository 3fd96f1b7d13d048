package serviceImp

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conductor/database"
	"conductor/entities"
	bedRepoImp "conductor/pkg/bed/repositoryImp"
	bedsvc "conductor/pkg/bed/service"
	bedSvcImp "conductor/pkg/bed/serviceImp"
	"conductor/pkg/brix/repositoryImp"
	"conductor/pkg/brix/service"
)

func TestRecordTracksNewestReading(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "brix.db"))
	require.NoError(t, err)
	beds := bedSvcImp.NewBedService(bedRepoImp.New(db))
	b, err := beds.CreateBed(&entities.Bed{UserID: "u1", Frequency: entities.Freq528})
	require.NoError(t, err)
	s := NewBrixService(repositoryImp.New(db), beds, nil)

	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }
	_, err = s.Record("u1", &entities.BrixReading{BedID: b.BedID, Date: day(10), Brix: 14})
	require.NoError(t, err)
	// an older reading entered late does not replace the newest
	_, err = s.Record("u1", &entities.BrixReading{BedID: b.BedID, Date: day(2), Brix: 9})
	require.NoError(t, err)

	got, err := beds.GetBed(b.BedID, "u1")
	require.NoError(t, err)
	require.NotNil(t, got.Brix)
	assert.Equal(t, 14.0, *got.Brix)

	list, err := s.List(b.BedID, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 9.0, list[0].Brix)

	_, err = s.Record("u1", &entities.BrixReading{BedID: b.BedID, Brix: 55})
	assert.ErrorIs(t, err, service.ErrInvalidReading)

	_, err = s.Record("u2", &entities.BrixReading{BedID: b.BedID, Brix: 10})
	assert.ErrorIs(t, err, bedsvc.ErrBedNotFound)

	_, err = s.List(b.BedID, "u2")
	assert.ErrorIs(t, err, bedsvc.ErrBedNotFound)
}

func TestRecordWithoutDateIsNewest(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "brix.db"))
	require.NoError(t, err)
	beds := bedSvcImp.NewBedService(bedRepoImp.New(db))
	b, err := beds.CreateBed(&entities.Bed{UserID: "u1", Frequency: entities.Freq528})
	require.NoError(t, err)
	s := NewBrixService(repositoryImp.New(db), beds, nil)

	_, err = s.Record("u1", &entities.BrixReading{BedID: b.BedID, Date: time.Now().AddDate(0, 0, -3), Brix: 14})
	require.NoError(t, err)
	m, err := s.Record("u1", &entities.BrixReading{BedID: b.BedID, Brix: 18})
	require.NoError(t, err)
	assert.False(t, m.Date.IsZero())

	got, err := beds.GetBed(b.BedID, "u1")
	require.NoError(t, err)
	require.NotNil(t, got.Brix)
	assert.Equal(t, 18.0, *got.Brix)
}
