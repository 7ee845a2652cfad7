package freeroom

import (
	"maps"
	"slices"
)

// RoomSet is a set of room names.
type RoomSet map[string]struct{}

func (s RoomSet) Has(room string) bool {
	_, ok := s[room]
	return ok
}

// Sorted returns the rooms in display order.
func (s RoomSet) Sorted() []string {
	out := slices.Collect(maps.Keys(s))
	slices.SortFunc(out, CompareRoomNames)
	return out
}

func (s RoomSet) intersect(other RoomSet) RoomSet {
	out := RoomSet{}
	for room := range s {
		if other.Has(room) {
			out[room] = struct{}{}
		}
	}
	return out
}

// Index groups the free rooms of one day by slot and building. It is built
// once and must not be modified afterwards.
type Index struct {
	slots map[SlotId]map[string]RoomSet
}

// BuildIndex indexes every canonical record under (slot, building). A room
// listed more than once for the same slot and building (one row per
// equipment variant) is counted once.
func BuildIndex(records []CanonicalRecord) Index {
	slots := map[SlotId]map[string]RoomSet{}
	for _, r := range records {
		if r.Building == "" {
			continue
		}
		buildings, ok := slots[r.TimeSlot]
		if !ok {
			buildings = map[string]RoomSet{}
			slots[r.TimeSlot] = buildings
		}
		rooms, ok := buildings[r.Building]
		if !ok {
			rooms = RoomSet{}
			buildings[r.Building] = rooms
		}
		rooms[r.Name] = struct{}{}
	}
	return Index{slots: slots}
}

// Rooms returns the rooms free in a building during a slot, the result must
// not be modified.
func (idx Index) Rooms(slot SlotId, building string) RoomSet {
	rooms := idx.slots[slot][building]
	if rooms == nil {
		return RoomSet{}
	}
	return rooms
}

// Buildings returns every building that has at least one free room in slot.
func (idx Index) Buildings(slot SlotId) []string {
	out := slices.Collect(maps.Keys(idx.slots[slot]))
	slices.Sort(out)
	return out
}

func (idx Index) Empty() bool {
	return len(idx.slots) == 0
}

// AllDayFor returns the rooms of a building that are free in every
// sequential slot. The aggregate slot is never considered.
func (idx Index) AllDayFor(building string) RoomSet {
	var common RoomSet
	for _, slot := range SequentialSlots {
		current := idx.Rooms(slot, building)
		if common == nil {
			common = maps.Clone(current)
		} else {
			common = common.intersect(current)
		}
		if len(common) == 0 {
			return RoomSet{}
		}
	}
	return common
}

// AllDaySet maps a building to its rooms free for the whole day.
type AllDaySet map[string]RoomSet

func (a AllDaySet) Has(building, room string) bool {
	return a[building].Has(room)
}

// AllDay computes AllDayFor for the given buildings.
func (idx Index) AllDay(buildings []string) AllDaySet {
	out := make(AllDaySet, len(buildings))
	for _, b := range buildings {
		out[b] = idx.AllDayFor(b)
	}
	return out
}

// NewlyFree reports whether room was not free in the sequential slot before
// slot. It is always false for the first sequential slot and the aggregate
// slot since they have no predecessor.
func (idx Index) NewlyFree(slot SlotId, building, room string) bool {
	prev, ok := slot.Prev()
	if !ok {
		return false
	}
	return !idx.Rooms(prev, building).Has(room)
}

// OccupiedNext reports whether room stops being free in the sequential slot
// after slot. It is always false for the last sequential slot and the
// aggregate slot.
func (idx Index) OccupiedNext(slot SlotId, building, room string) bool {
	next, ok := slot.Next()
	if !ok {
		return false
	}
	return !idx.Rooms(next, building).Has(room)
}
