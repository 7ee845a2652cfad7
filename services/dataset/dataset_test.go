package dataset

import (
	"freeroom/lib/freeroom"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRawDay(t *testing.T) {
	dir := DayDir(t.TempDir(), 3)
	require.Equal(t, "output-day-3", filepath.Base(dir))

	err := WriteRawSlot(dir, freeroom.Slot1_2, []freeroom.RawRecord{
		{Slot: freeroom.Slot1_2, Fields: map[string]string{"教学楼": "工学馆", "名称": "工学馆101"}},
	})
	require.NoError(t, err)
	err = WriteRawSlot(dir, freeroom.Slot11_12, []freeroom.RawRecord{
		{Slot: freeroom.Slot11_12, Fields: map[string]string{"教学楼": "基础楼", "名称": "基础楼203"}},
		{Slot: freeroom.Slot11_12, Fields: map[string]string{"教学楼": "基础楼", "名称": "基础楼204"}},
	})
	require.NoError(t, err)

	// neither of these belong to a slot
	require.NoError(t, os.WriteFile(filepath.Join(dir, "classroom_results_13-14.json"), []byte(`[{"名称": "x"}]`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644))

	records, err := ReadRawDay(dir)
	require.NoError(t, err)

	bySlot := map[freeroom.SlotId][]string{}
	for _, r := range records {
		bySlot[r.Slot] = append(bySlot[r.Slot], r.Get("名称"))
	}
	diff := cmp.Diff(map[freeroom.SlotId][]string{
		freeroom.Slot1_2:   {"工学馆101"},
		freeroom.Slot11_12: {"基础楼203", "基础楼204"},
	}, bySlot)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestReadRawDayMissing(t *testing.T) {
	records, err := ReadRawDay(filepath.Join(t.TempDir(), "output-day-0"))
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestReadRawDayMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, RawFileName(freeroom.Slot3_4)), []byte(`{`), 0644))
	_, err := ReadRawDay(dir)
	require.Error(t, err)
}

func TestProcessed(t *testing.T) {
	dir := t.TempDir()

	records, err := ReadProcessed(dir)
	require.NoError(t, err)
	require.Empty(t, records)

	require.NoError(t, WriteProcessed(dir, nil))
	contents, err := os.ReadFile(filepath.Join(dir, ProcessedFile))
	require.NoError(t, err)
	require.Equal(t, "[]", string(contents))

	day := freeroom.Process([]freeroom.RawRecord{
		{Slot: freeroom.Slot5_6, Fields: map[string]string{
			"序号": "1", "校区": "本部", "教学楼": "工学馆", "名称": "工学馆1A", "容量": "80", "教室设备配置": "多媒体",
		}},
	}, freeroom.Options{})
	require.NoError(t, WriteProcessed(dir, day.Records))

	records, err = ReadProcessed(dir)
	require.NoError(t, err)
	diff := cmp.Diff(day.Records, records)
	if diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, "1A", records[0].Name)
}
