package freeroom

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func canonical(slot SlotId, building string, names ...string) []CanonicalRecord {
	out := make([]CanonicalRecord, len(names))
	for i, name := range names {
		out[i] = CanonicalRecord{
			Building:     building,
			Name:         name,
			TimeSlot:     slot,
			Capacity:     "30",
			EquipmentTag: "多媒体",
		}
	}
	return out
}

func join(parts ...[]CanonicalRecord) []CanonicalRecord {
	var out []CanonicalRecord
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestSlotNeighbors(t *testing.T) {
	testCases := []struct {
		slot      SlotId
		prev      SlotId
		hasPrev   bool
		next      SlotId
		hasNext   bool
		aggregate bool
	}{
		{slot: Slot1_2, next: Slot3_4, hasNext: true},
		{slot: Slot3_4, prev: Slot1_2, hasPrev: true, next: Slot5_6, hasNext: true},
		{slot: Slot7_8, prev: Slot5_6, hasPrev: true, next: Slot9_10, hasNext: true},
		{slot: Slot11_12, prev: Slot9_10, hasPrev: true},
		{slot: Slot1_8, aggregate: true},
	}

	for _, test := range testCases {
		t.Run(string(test.slot), func(t *testing.T) {
			prev, ok := test.slot.Prev()
			require.Equal(t, test.hasPrev, ok)
			require.Equal(t, test.prev, prev)

			next, ok := test.slot.Next()
			require.Equal(t, test.hasNext, ok)
			require.Equal(t, test.next, next)

			require.Equal(t, test.aggregate, test.slot.IsAggregate())
		})
	}

	_, err := ParseSlot("13-14")
	require.Error(t, err)
	slot, err := ParseSlot("9-10")
	require.NoError(t, err)
	begin, end := slot.Bounds()
	require.Equal(t, 9, begin)
	require.Equal(t, 10, end)
}

func TestBuildIndexDeduplicates(t *testing.T) {
	records := join(
		canonical(Slot1_2, "基础楼", "101", "101", "102"),
		canonical(Slot1_2, "", "操场"),
	)
	idx := BuildIndex(records)

	diff := cmp.Diff([]string{"101", "102"}, idx.Rooms(Slot1_2, "基础楼").Sorted())
	if diff != "" {
		t.Fatal(diff)
	}
	diff = cmp.Diff([]string{"基础楼"}, idx.Buildings(Slot1_2))
	if diff != "" {
		t.Fatal(diff)
	}

	require.NotNil(t, idx.Rooms(Slot3_4, "基础楼"))
	require.Empty(t, idx.Rooms(Slot3_4, "基础楼"))
	require.True(t, BuildIndex(nil).Empty())
}

func TestBuildIndexIsDeterministic(t *testing.T) {
	records := join(
		canonical(Slot1_2, "基础楼", "101", "102"),
		canonical(Slot3_4, "基础楼", "102"),
		canonical(Slot1_8, "工学馆", "1A"),
	)
	first := BuildIndex(records)
	second := BuildIndex(records)

	for _, slot := range AllSlots {
		for _, b := range BuildingNames() {
			diff := cmp.Diff(first.Rooms(slot, b).Sorted(), second.Rooms(slot, b).Sorted())
			if diff != "" {
				t.Fatal(slot, b, diff)
			}
		}
	}
}

func TestAllDay(t *testing.T) {
	var records []CanonicalRecord
	for _, slot := range SequentialSlots {
		records = append(records, canonical(slot, "工学馆", "205", "310")...)
	}
	// 310 is busy during 9-10
	records = slices.DeleteFunc(records, func(r CanonicalRecord) bool {
		return r.TimeSlot == Slot9_10 && r.Name == "310"
	})
	// being free in the aggregate slot alone is not enough
	records = append(records, canonical(Slot1_8, "工学馆", "999")...)

	idx := BuildIndex(records)
	allDay := idx.AllDay(BuildingNames())

	require.True(t, allDay.Has("工学馆", "205"))
	require.False(t, allDay.Has("工学馆", "310"))
	require.False(t, allDay.Has("工学馆", "999"))
	require.False(t, allDay.Has("基础楼", "205"))

	for building, rooms := range allDay {
		for room := range rooms {
			for _, slot := range SequentialSlots {
				require.True(t, idx.Rooms(slot, building).Has(room))
			}
		}
	}
}

func TestAllDayMissingSlot(t *testing.T) {
	records := join(
		canonical(Slot1_2, "基础楼", "101"),
		canonical(Slot3_4, "基础楼", "101"),
	)
	idx := BuildIndex(records)
	require.Empty(t, idx.AllDayFor("基础楼"))
}

func TestAdjacencyPredicates(t *testing.T) {
	records := join(
		canonical(Slot1_2, "基础楼", "101", "102"),
		canonical(Slot3_4, "基础楼", "102", "103"),
		canonical(Slot1_8, "基础楼", "101"),
	)
	idx := BuildIndex(records)

	require.True(t, idx.OccupiedNext(Slot1_2, "基础楼", "101"))
	require.False(t, idx.OccupiedNext(Slot1_2, "基础楼", "102"))
	require.True(t, idx.NewlyFree(Slot3_4, "基础楼", "103"))
	require.False(t, idx.NewlyFree(Slot3_4, "基础楼", "102"))

	// no predecessor
	require.False(t, idx.NewlyFree(Slot1_2, "基础楼", "101"))
	require.False(t, idx.NewlyFree(Slot1_8, "基础楼", "101"))
	// no successor
	require.False(t, idx.OccupiedNext(Slot11_12, "基础楼", "101"))
	require.False(t, idx.OccupiedNext(Slot1_8, "基础楼", "101"))
}

func TestCompareRoomNames(t *testing.T) {
	names := []string{"10", "9", "101", "1A", "1", "010", "6026-A", "报告厅", "A1", "2B", "2A", "6026"}
	sorted := RoomSet{}
	for _, n := range names {
		sorted[n] = struct{}{}
	}

	diff := cmp.Diff(
		[]string{"1", "1A", "2A", "2B", "9", "010", "10", "101", "6026", "6026-A", "A1", "报告厅"},
		sorted.Sorted(),
	)
	if diff != "" {
		t.Fatal(diff)
	}

	// total order: antisymmetric, equal only to itself, transitive
	for _, a := range names {
		require.Zero(t, CompareRoomNames(a, a))
		for _, b := range names {
			if a == b {
				continue
			}
			ab := CompareRoomNames(a, b)
			require.NotZero(t, ab, "%s %s", a, b)
			require.Equal(t, -ab, CompareRoomNames(b, a), "%s %s", a, b)
			for _, c := range names {
				if ab < 0 && CompareRoomNames(b, c) < 0 {
					require.Negative(t, CompareRoomNames(a, c), "%s %s %s", a, b, c)
				}
			}
		}
	}
}
