package process

import (
	"context"
	"freeroom/lib/freeroom"
	"freeroom/lib/testutil"
	"freeroom/services/dataset"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func rawRow(building, name string) freeroom.RawRecord {
	return freeroom.RawRecord{Fields: map[string]string{
		freeroom.ColumnSequence:  "1",
		freeroom.ColumnCampus:    "本部",
		freeroom.ColumnBuilding:  building,
		freeroom.ColumnName:      name,
		freeroom.ColumnCapacity:  "60",
		freeroom.ColumnEquipment: "多媒体",
	}}
}

func TestProcessAll(t *testing.T) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "services/process"})
	defer cleanup()

	dataDir := t.TempDir()
	day0 := dataset.DayDir(dataDir, 0)
	require.NoError(t, dataset.WriteRawSlot(day0, freeroom.Slot1_2, []freeroom.RawRecord{
		rawRow("工学馆", "工学馆101"),
		rawRow("工学馆", "工学馆102"),
		rawRow("大学会馆", "大学会馆1"),
	}))
	require.NoError(t, dataset.WriteRawSlot(day0, freeroom.Slot3_4, []freeroom.RawRecord{
		rawRow("工学馆", "工学馆101"),
	}))

	opts := Options{
		DataDir: dataDir,
		Days:    2,
		Pipeline: freeroom.Options{
			Denylist: freeroom.Denylist{"工学馆": {"102"}}.Set(),
		},
	}
	days, err := ProcessAll(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, days, 2)

	require.Equal(t, 4, days[0].RawCount)
	require.Equal(t, 3, days[0].SanitizedCount)
	require.Len(t, days[0].Records, 2)
	require.True(t, days[0].Index.Rooms(freeroom.Slot1_2, "工学馆").Has("101"))
	require.False(t, days[0].Index.Rooms(freeroom.Slot1_2, "工学馆").Has("102"))

	// a day without raw files still gets an empty processed file
	require.Empty(t, days[1].Records)
	_, err = os.Stat(filepath.Join(dataset.DayDir(dataDir, 1), dataset.ProcessedFile))
	require.NoError(t, err)

	loaded, err := LoadAll(context.Background(), dataDir, 2, nil)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	require.Equal(t, days[0].Records, loaded[0].Records)

	cell, ok := loaded[0].Cell(freeroom.CellKey{Slot: freeroom.Slot1_2, Building: "工学馆", Floor: "1F"})
	require.True(t, ok)
	require.Equal(t, "101", cell.Rooms[0].Raw)
}

func TestProcessAllBrokenDay(t *testing.T) {
	dataDir := t.TempDir()
	day0 := dataset.DayDir(dataDir, 0)
	require.NoError(t, os.MkdirAll(day0, 0777))
	require.NoError(t, os.WriteFile(
		filepath.Join(day0, dataset.RawFileName(freeroom.Slot1_2)),
		[]byte("{not json"),
		0644,
	))

	_, err := ProcessAll(context.Background(), Options{DataDir: dataDir, Days: 1})
	require.Error(t, err)
}
