package freeroom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDenylistAudit(t *testing.T) {
	// the audit runs on unfiltered days, otherwise every entry would be stale
	day := Process([]RawRecord{
		row(Slot1_2, "工学馆", "工学馆101", "30", "多媒体"),
		row(Slot1_2, "工学馆", "工学馆7A", "30", "多媒体"),
		row(Slot3_4, "基础楼", "基础楼203", "30", "多媒体"),
	}, Options{})

	denylist := Denylist{
		"工学馆": {"101", "工学馆7A"},
		"基础楼": {"203"},
		"地质楼": {"101"},
	}
	stale := denylist.Audit([]Day{day})
	require.Len(t, stale, 2)

	require.Equal(t, "地质楼", stale[0].Building)
	require.Equal(t, "101", stale[0].Room)
	require.Empty(t, stale[0].Suggestion)

	require.Equal(t, "工学馆", stale[1].Building)
	require.Equal(t, "工学馆7A", stale[1].Room)
	require.Equal(t, "7A", stale[1].Suggestion)
	require.Greater(t, stale[1].Score, 0.0)

	require.Empty(t, Denylist{}.Audit([]Day{day}))
}
