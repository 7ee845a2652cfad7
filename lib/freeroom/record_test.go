package freeroom

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCanonicalRecordJSON(t *testing.T) {
	record := CanonicalRecord{
		Building:     "科技楼",
		Name:         "6026-A自习室Q",
		TimeSlot:     Slot9_10,
		Capacity:     "40",
		EquipmentTag: "多媒体",
		Extra:        map[string]string{"备注": "x"},
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var flat map[string]string
	require.NoError(t, json.Unmarshal(data, &flat))
	require.Equal(t, "9-10", flat[ColumnTimeSlot])
	require.Equal(t, "6026-A自习室Q", flat[ColumnName])

	var decoded CanonicalRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	diff := cmp.Diff(record, decoded)
	if diff != "" {
		t.Fatal(diff)
	}

	err = json.Unmarshal([]byte(`{"空闲时段": "13-14"}`), &decoded)
	require.Error(t, err)
}
