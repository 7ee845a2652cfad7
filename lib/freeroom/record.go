package freeroom

import (
	"encoding/json"
	"fmt"
	"maps"
)

// column names used by the portal's result table
const (
	ColumnBuilding  = "教学楼"
	ColumnName      = "名称"
	ColumnCapacity  = "容量"
	ColumnEquipment = "教室设备配置"
	ColumnCampus    = "校区"
	ColumnSequence  = "序号"
	// not part of the portal table, added when a row is tagged with its query slot
	ColumnTimeSlot = "空闲时段"
)

// RawRecord is one scraped table row tagged with the slot it was queried for.
type RawRecord struct {
	Slot   SlotId
	Fields map[string]string
}

// Get returns the value of a column, missing columns read as "".
func (r RawRecord) Get(column string) string {
	return r.Fields[column]
}

// CanonicalRecord is a sanitized free-room entry.
type CanonicalRecord struct {
	Building     string
	Name         string
	TimeSlot     SlotId
	Capacity     string
	EquipmentTag string
	// every other column of the portal table, passed through untouched
	Extra map[string]string
}

func (r CanonicalRecord) clone() CanonicalRecord {
	r.Extra = maps.Clone(r.Extra)
	return r
}

// fromRaw lifts a raw row into the record shape rules operate on.
func fromRaw(raw RawRecord) CanonicalRecord {
	extra := make(map[string]string, len(raw.Fields))
	for k, v := range raw.Fields {
		switch k {
		case ColumnBuilding, ColumnName, ColumnCapacity, ColumnEquipment, ColumnTimeSlot:
			continue
		}
		extra[k] = v
	}
	return CanonicalRecord{
		Building:     raw.Get(ColumnBuilding),
		Name:         raw.Get(ColumnName),
		TimeSlot:     raw.Slot,
		Capacity:     raw.Get(ColumnCapacity),
		EquipmentTag: raw.Get(ColumnEquipment),
		Extra:        extra,
	}
}

func (r CanonicalRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(r.Extra)+5)
	for k, v := range r.Extra {
		out[k] = v
	}
	out[ColumnBuilding] = r.Building
	out[ColumnName] = r.Name
	out[ColumnTimeSlot] = string(r.TimeSlot)
	out[ColumnCapacity] = r.Capacity
	out[ColumnEquipment] = r.EquipmentTag
	return json.Marshal(out)
}

func (r *CanonicalRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]string
	err := json.Unmarshal(data, &fields)
	if err != nil {
		return err
	}
	slot := SlotId(fields[ColumnTimeSlot])
	if !slot.Valid() {
		return fmt.Errorf("record has unknown time slot '%s'", slot)
	}
	*r = fromRaw(RawRecord{Slot: slot, Fields: fields})
	return nil
}
