package objstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meredith/spikekit/internal/neuro"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session", "data.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestSaveAndReadAll(t *testing.T) {
	store, _ := newTestStore(t)

	st := neuro.NewSpikeTrain("unit-1", neuro.NewQuantity([]float64{0.1, 0.5, 0.9}, "s"), 0, 1)
	require.NoError(t, store.Save(st, "/day1/trial1"))

	ev := neuro.NewEvent("stim", neuro.NewQuantity([]float64{0.3}, "s"), []string{"on"})
	require.NoError(t, store.Save(ev, "/day1/trial2"))

	entries, err := store.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "/day1/trial1", entries[0].Path)
	assert.Equal(t, "SpikeTrain", entries[0].Object.TypeName())
	got, ok := entries[0].Object.(*neuro.SpikeTrain)
	require.True(t, ok)
	assert.Equal(t, []float64{0.1, 0.5, 0.9}, got.Times.Values)
	assert.Equal(t, "/day1/trial1", got.StorePath())

	assert.Equal(t, "/day1/trial2", entries[1].Path)
	assert.Equal(t, "Event", entries[1].Object.TypeName())
}

func TestSaveRecordsStorePath(t *testing.T) {
	store, _ := newTestStore(t)

	st := neuro.NewSpikeTrain("unit-1", neuro.NewQuantity([]float64{0.2}, "s"), 0, 1)
	require.Empty(t, st.StorePath())
	require.NoError(t, store.Save(st, "/a/b"))
	assert.Equal(t, "/a/b", st.StorePath())
}

func TestPaths(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Save(neuro.NewSpikeTrain("a", neuro.NewQuantity([]float64{0.1}, "s"), 0, 1), "/z"))
	require.NoError(t, store.Save(neuro.NewSpikeTrain("b", neuro.NewQuantity([]float64{0.2}, "s"), 0, 1), "/a"))
	require.NoError(t, store.Save(neuro.NewSpikeTrain("c", neuro.NewQuantity([]float64{0.3}, "s"), 0, 1), "/a"))

	paths, err := store.Paths()
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/z"}, paths)
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(neuro.NewSpikeTrain("keep", neuro.NewQuantity([]float64{0.4}, "s"), 0, 1), "/x"))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/x", entries[0].Path)
}

func TestEmptyStore(t *testing.T) {
	store, _ := newTestStore(t)

	entries, err := store.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, entries)

	paths, err := store.Paths()
	require.NoError(t, err)
	assert.Empty(t, paths)
}
