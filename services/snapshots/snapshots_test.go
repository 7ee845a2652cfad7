package snapshots

import (
	"context"
	"freeroom/lib/freeroom"
	"freeroom/lib/testutil"
	"freeroom/lib/timezone"
	"freeroom/services/snapshots/db"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/snapshots",
		DbSchema: db.Schema,
	})
	defer cleanup()
	store := NewStore(setup.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	// the schema is idempotent
	require.NoError(t, store.Migrate(ctx))

	_, ok, err := store.LatestRun(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	today := timezone.Day(timezone.Now(), 0)
	day0 := []freeroom.CanonicalRecord{
		{Building: "工学馆", Name: "101", TimeSlot: freeroom.Slot1_2, Capacity: "120", EquipmentTag: "多媒体", Extra: map[string]string{}},
		{Building: "科技楼", Name: "6026-A自习室Q", TimeSlot: freeroom.Slot9_10, Capacity: "40", EquipmentTag: "多媒体", Extra: map[string]string{}},
	}
	day1 := []freeroom.CanonicalRecord{
		{Building: "基础楼", Name: "203", TimeSlot: freeroom.Slot3_4, Capacity: "60", EquipmentTag: "多媒体", Extra: map[string]string{}},
	}

	older := today.Add(-48 * time.Hour)
	firstId, err := store.SaveRun(ctx, older, "hash-old", []DaySnapshot{{Offset: 0, Date: older, Records: day1}})
	require.NoError(t, err)

	secondId, err := store.SaveRun(ctx, today, "hash-new", []DaySnapshot{
		{Offset: 0, Date: today, Records: day0},
		{Offset: 1, Date: today.AddDate(0, 0, 1), Records: day1},
	})
	require.NoError(t, err)
	require.NotEqual(t, firstId, secondId)

	latest, ok, err := store.LatestRun(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, secondId, latest.ID)
	require.Equal(t, "hash-new", latest.ContentHash)

	records, err := store.GetDay(ctx, secondId, 0)
	require.NoError(t, err)
	diff := cmp.Diff(day0, records)
	if diff != "" {
		t.Fatal(diff)
	}

	records, err = store.GetDay(ctx, secondId, 5)
	require.NoError(t, err)
	require.Empty(t, records)

	runs, err := store.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, secondId, runs[0].ID)

	removed, err := store.Prune(ctx, today.Add(-time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	records, err = store.GetDay(ctx, firstId, 0)
	require.NoError(t, err)
	require.Empty(t, records)

	runs, err = store.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
}
