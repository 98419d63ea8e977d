package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralo/citysim/internal/city"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "city.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStore_SnapshotRoundTrip(t *testing.T) {
	store := openTestStore(t)

	st := city.NewState()
	st.Population = 321
	st.Date = city.Date{Year: 1, Month: 5, Week: 2, TotalWeeks: 17}

	require.NoError(t, store.SaveSnapshot("slot1", st))
	assert.True(t, store.HasSnapshot("slot1"))
	assert.False(t, store.HasSnapshot("slot2"))

	got, err := store.LoadSnapshot("slot1")
	require.NoError(t, err)
	assert.Equal(t, 321, got.Population)
	assert.Equal(t, st.Date, got.Date)
}

func TestStore_SaveOverwritesSlot(t *testing.T) {
	store := openTestStore(t)

	st := city.NewState()
	st.Population = 10
	require.NoError(t, store.SaveSnapshot(AutosaveSlot, st))

	st.Population = 20
	require.NoError(t, store.SaveSnapshot(AutosaveSlot, st))

	got, err := store.LoadSnapshot(AutosaveSlot)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Population)

	slots, err := store.ListSnapshots()
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestStore_LoadMissingSlotErrors(t *testing.T) {
	store := openTestStore(t)
	_, err := store.LoadSnapshot("nope")
	assert.Error(t, err)
}

func TestStore_EventLog(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveEvents(nil), "empty batches are a no-op")
	require.NoError(t, store.SaveEvents([]Event{
		{Week: 4, Kind: "level_up", Message: "level 2"},
		{Week: 8, Kind: "mission_complete", Message: "Growing Town"},
	}))

	events, err := store.RecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 8, events[0].Week, "most recent first")
	assert.Equal(t, "level_up", events[1].Kind)

	limited, err := store.RecentEvents(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStore_Meta(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveMeta("city_name", "Newtown"))
	require.NoError(t, store.SaveMeta("city_name", "Oldtown"))

	v, err := store.GetMeta("city_name")
	require.NoError(t, err)
	assert.Equal(t, "Oldtown", v)

	_, err = store.GetMeta("missing")
	assert.Error(t, err)
}
