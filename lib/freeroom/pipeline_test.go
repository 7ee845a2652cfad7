package freeroom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fullDay(building, name string) []RawRecord {
	var out []RawRecord
	for _, slot := range SequentialSlots {
		out = append(out, row(slot, building, name, "30", "多媒体"))
	}
	return out
}

func TestProcess(t *testing.T) {
	var raw []RawRecord
	raw = append(raw, row(Slot1_2, "工学馆", "工学馆101", "30", "多媒体"))
	raw = append(raw, fullDay("工学馆", "工学馆205")...)
	raw = append(raw, row(Slot1_8, "工学馆", "工学馆205", "30", "多媒体"))
	raw = append(raw, row(Slot3_4, "工学馆", "工学馆306", "30", "多媒体"))
	raw = append(raw, row(Slot3_4, "工学馆", "工学馆399", "30", "多媒体"))
	raw = append(raw, row(Slot1_2, "大学会馆", "大学会馆101", "30", "多媒体"))
	raw = append(raw, row(Slot1_2, "基础楼", "基础楼101", "30", "机房"))

	day := Process(raw, Options{
		Denylist: Denylist{"工学馆": {"399"}}.Set(),
	})

	require.Equal(t, len(raw), day.RawCount)
	require.Equal(t, 10, day.SanitizedCount)
	require.Len(t, day.Records, 9)
	require.True(t, day.AllDay.Has("工学馆", "205"))

	testCases := []struct {
		key    CellKey
		expect string
	}{
		// free at 1-2, busy at 3-4
		{key: CellKey{Slot: Slot1_2, Building: "工学馆", Floor: "1F"}, expect: "<del>101</del>"},
		{key: CellKey{Slot: Slot1_2, Building: "工学馆", Floor: "2F"}, expect: "<strong>205</strong>"},
		{key: CellKey{Slot: Slot3_4, Building: "工学馆", Floor: "1F"}, expect: "无"},
		{key: CellKey{Slot: Slot3_4, Building: "工学馆", Floor: "2F"}, expect: "<strong>205</strong>"},
		{key: CellKey{Slot: Slot3_4, Building: "工学馆", Floor: "3F"}, expect: "<del><u>306</u></del>"},
		{key: CellKey{Slot: Slot1_8, Building: "工学馆", Floor: "2F"}, expect: "<strong>205</strong>"},
		{key: CellKey{Slot: Slot1_2, Building: "基础楼"}, expect: "无"},
	}
	for _, test := range testCases {
		t.Run(string(test.key.Slot)+test.key.Building+test.key.Floor, func(t *testing.T) {
			cell, ok := day.Cell(test.key)
			require.True(t, ok)
			require.Equal(t, test.expect, cell.Markup())
		})
	}

	_, ok := day.Cell(CellKey{Slot: Slot1_2, Building: "大学会馆"})
	require.False(t, ok)
}

func TestProcessEmpty(t *testing.T) {
	day := Process(nil, Options{})
	require.Empty(t, day.Records)
	require.True(t, day.Index.Empty())
	require.NotEmpty(t, day.Cells)
	for _, c := range day.Cells {
		require.Equal(t, "无", c.Markup())
	}
}
