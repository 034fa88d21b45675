package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlplan/finance-planner/internal/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	s := openTestStore(t)
	settings := config.NewInputParser().CreateExampleSettings()

	require.NoError(t, s.SaveSnapshot("baseline", settings))

	loaded, err := s.LoadSnapshot("baseline")
	require.NoError(t, err)
	assert.True(t, loaded.Income.BaseSalary.Equal(settings.Income.BaseSalary))
	assert.Equal(t, settings.Planning.ProjectionYears, loaded.Planning.ProjectionYears)
	require.Len(t, loaded.Grants, len(settings.Grants))
	assert.Equal(t, settings.Grants[0].ID, loaded.Grants[0].ID)
	assert.True(t, loaded.Grants[0].GrantValue.Equal(settings.Grants[0].GrantValue))
}

func TestSaveSnapshotOverwrites(t *testing.T) {
	s := openTestStore(t)
	parser := config.NewInputParser()

	first := parser.CreateExampleSettings()
	require.NoError(t, s.SaveSnapshot("plan", first))

	second := parser.CreateExampleSettings()
	second.Planning.ProjectionYears = 25
	require.NoError(t, s.SaveSnapshot("plan", second))

	loaded, err := s.LoadSnapshot("plan")
	require.NoError(t, err)
	assert.Equal(t, 25, loaded.Planning.ProjectionYears)

	infos, err := s.ListSnapshots()
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestLoadSnapshotNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LoadSnapshot("missing")
	assert.True(t, errors.Is(err, ErrSnapshotNotFound))
}

func TestListSnapshots(t *testing.T) {
	s := openTestStore(t)
	settings := config.NewInputParser().CreateExampleSettings()

	require.NoError(t, s.SaveSnapshot("zeta", settings))
	require.NoError(t, s.SaveSnapshot("alpha", settings))

	infos, err := s.ListSnapshots()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, "zeta", infos[1].Name)
	assert.False(t, infos[0].CreatedAt.IsZero())
}

func TestDeleteSnapshot(t *testing.T) {
	s := openTestStore(t)
	settings := config.NewInputParser().CreateExampleSettings()

	require.NoError(t, s.SaveSnapshot("doomed", settings))
	require.NoError(t, s.DeleteSnapshot("doomed"))

	_, err := s.LoadSnapshot("doomed")
	assert.True(t, errors.Is(err, ErrSnapshotNotFound))

	err = s.DeleteSnapshot("doomed")
	assert.True(t, errors.Is(err, ErrSnapshotNotFound))
}

func TestSaveSnapshotValidation(t *testing.T) {
	s := openTestStore(t)

	assert.Error(t, s.SaveSnapshot("", config.NewInputParser().CreateExampleSettings()))
	assert.Error(t, s.SaveSnapshot("plan", nil))
}
