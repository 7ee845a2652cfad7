package freeroom

import "fmt"

// SlotId identifies a teaching-period range as the portal reports it.
type SlotId string

const (
	Slot1_2   SlotId = "1-2"
	Slot3_4   SlotId = "3-4"
	Slot5_6   SlotId = "5-6"
	Slot7_8   SlotId = "7-8"
	Slot9_10  SlotId = "9-10"
	Slot11_12 SlotId = "11-12"
	// the whole-morning aggregate, it overlaps the first four sequential slots
	Slot1_8 SlotId = "1-8"
)

// SequentialSlots tile a full day in order.
var SequentialSlots = []SlotId{Slot1_2, Slot3_4, Slot5_6, Slot7_8, Slot9_10, Slot11_12}

// AllSlots is the order cells are rendered in, the aggregate slot comes last.
var AllSlots = []SlotId{Slot1_2, Slot3_4, Slot5_6, Slot7_8, Slot9_10, Slot11_12, Slot1_8}

// QuerySlots is the order the portal is queried in.
var QuerySlots = []SlotId{Slot1_2, Slot3_4, Slot5_6, Slot7_8, Slot1_8, Slot9_10, Slot11_12}

var slotBounds = map[SlotId][2]int{
	Slot1_2:   {1, 2},
	Slot3_4:   {3, 4},
	Slot5_6:   {5, 6},
	Slot7_8:   {7, 8},
	Slot9_10:  {9, 10},
	Slot11_12: {11, 12},
	Slot1_8:   {1, 8},
}

func ParseSlot(s string) (SlotId, error) {
	slot := SlotId(s)
	if _, ok := slotBounds[slot]; !ok {
		return "", fmt.Errorf("unknown time slot '%s'", s)
	}
	return slot, nil
}

// Bounds returns the first and last period of the slot.
func (s SlotId) Bounds() (begin, end int) {
	b := slotBounds[s]
	return b[0], b[1]
}

func (s SlotId) Valid() bool {
	_, ok := slotBounds[s]
	return ok
}

func (s SlotId) IsAggregate() bool {
	return s == Slot1_8
}

// sequentialIndex returns the position of s in SequentialSlots or -1.
func (s SlotId) sequentialIndex() int {
	for i, seq := range SequentialSlots {
		if seq == s {
			return i
		}
	}
	return -1
}

// Prev returns the preceding sequential slot, ok is false for the first
// sequential slot and the aggregate slot.
func (s SlotId) Prev() (SlotId, bool) {
	i := s.sequentialIndex()
	if i <= 0 {
		return "", false
	}
	return SequentialSlots[i-1], true
}

// Next returns the following sequential slot, ok is false for the last
// sequential slot and the aggregate slot.
func (s SlotId) Next() (SlotId, bool) {
	i := s.sequentialIndex()
	if i < 0 || i >= len(SequentialSlots)-1 {
		return "", false
	}
	return SequentialSlots[i+1], true
}
