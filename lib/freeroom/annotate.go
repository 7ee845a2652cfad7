package freeroom

import (
	"regexp"
	"slices"
	"strings"
)

// AnnotatedRoom is a room ready to be placed into a report cell.
type AnnotatedRoom struct {
	Raw     string
	Display string

	AllDay       bool
	NewlyFree    bool
	OccupiedNext bool
}

// Style wraps a room name in markup, underline innermost and bold outermost.
func Style(raw string, allDay, newlyFree, occupiedNext bool) string {
	styled := raw
	if newlyFree {
		styled = "<u>" + styled + "</u>"
	}
	if occupiedNext {
		styled = "<del>" + styled + "</del>"
	}
	if allDay {
		styled = "<strong>" + styled + "</strong>"
	}
	return styled
}

func splitLeadingInt(s string) (digits, suffix string, ok bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return "", s, false
	}
	return s[:i], s[i:], true
}

// compares two non-empty digit strings by numeric value
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// CompareRoomNames orders room names by their leading number, then by the
// rest of the name. Names without a leading number are compared as plain
// strings. Distinct names never compare equal.
func CompareRoomNames(a, b string) int {
	numA, suffixA, okA := splitLeadingInt(a)
	numB, suffixB, okB := splitLeadingInt(b)
	if okA && okB {
		if c := compareDigits(numA, numB); c != 0 {
			return c
		}
		if c := strings.Compare(suffixA, suffixB); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

var selfStudyLetterRegex = regexp.MustCompile(`(?i)` + selfStudyMarker + `([A-Z])$`)

// selfStudyLetter returns the sort letter of a self-study room, rooms whose
// letter cannot be found sort last.
func selfStudyLetter(room string) string {
	groups := selfStudyLetterRegex.FindStringSubmatch(room)
	if len(groups) < 2 {
		return "Z"
	}
	return strings.ToUpper(groups[1])
}

func isSelfStudy(room string) bool {
	return strings.Contains(room, selfStudyMarker)
}

// CellKey identifies a report cell, Floor is empty for buildings that are
// not split by floor.
type CellKey struct {
	Slot     SlotId
	Building string
	Floor    string
}

// Cell is the sorted, styled content of one report cell.
type Cell struct {
	Key       CellKey
	Rooms     []AnnotatedRoom
	SelfStudy []AnnotatedRoom

	separator string
}

const emptyCell = "无"

func joinDisplay(rooms []AnnotatedRoom, sep string) string {
	parts := make([]string, len(rooms))
	for i, r := range rooms {
		parts[i] = r.Display
	}
	return strings.Join(parts, sep)
}

// Markup renders the cell, regular rooms first then self-study rooms.
func (c Cell) Markup() string {
	html := joinDisplay(c.Rooms, c.separator)
	selfStudy := joinDisplay(c.SelfStudy, separatorBreak)
	if selfStudy != "" {
		if html != "" {
			html += separatorBreak
		}
		html += selfStudy
	}
	if html == "" {
		return emptyCell
	}
	return html
}

// Len returns the number of rooms in the cell.
func (c Cell) Len() int {
	return len(c.Rooms) + len(c.SelfStudy)
}

// slotView is what annotating a single slot needs to know about the day. prev
// is nil when the slot has no predecessor.
type slotView struct {
	slot   SlotId
	allDay AllDaySet
	prev   map[string]RoomSet
	next   map[string]RoomSet
}

func (v slotView) annotate(building, room string) AnnotatedRoom {
	allDay := v.allDay.Has(building, room)
	newlyFree := v.prev != nil && !v.prev[building].Has(room)
	occupiedNext := v.next != nil && !v.next[building].Has(room)
	return AnnotatedRoom{
		Raw:          room,
		Display:      Style(room, allDay, newlyFree, occupiedNext),
		AllDay:       allDay,
		NewlyFree:    newlyFree,
		OccupiedNext: occupiedNext,
	}
}

func (v slotView) cellsFor(b BuildingRule, rooms RoomSet) []Cell {
	if len(b.Floors) > 0 {
		byFloor := make(map[string][]string, len(b.Floors))
		for room := range rooms {
			floor, ok := b.FloorOf(room)
			if !ok {
				continue
			}
			byFloor[floor] = append(byFloor[floor], room)
		}
		cells := make([]Cell, len(b.Floors))
		for i, floor := range b.Floors {
			cells[i] = v.cell(b, floor, byFloor[floor])
		}
		return cells
	}

	names := make([]string, 0, len(rooms))
	for room := range rooms {
		names = append(names, room)
	}
	return []Cell{v.cell(b, "", names)}
}

func (v slotView) cell(b BuildingRule, floor string, names []string) Cell {
	c := Cell{
		Key:       CellKey{Slot: v.slot, Building: b.Name, Floor: floor},
		separator: b.Separator,
	}

	var selfStudy []string
	for _, name := range names {
		if b.Variant == VariantSelfStudy && isSelfStudy(name) {
			selfStudy = append(selfStudy, name)
			continue
		}
		c.Rooms = append(c.Rooms, v.annotate(b.Name, name))
	}
	slices.SortFunc(c.Rooms, func(x, y AnnotatedRoom) int {
		return CompareRoomNames(x.Raw, y.Raw)
	})

	slices.SortFunc(selfStudy, func(x, y string) int {
		if d := strings.Compare(selfStudyLetter(x), selfStudyLetter(y)); d != 0 {
			return d
		}
		return CompareRoomNames(x, y)
	})
	for _, name := range selfStudy {
		c.SelfStudy = append(c.SelfStudy, v.annotate(b.Name, name))
	}

	return c
}

func roomsBySlot(idx Index, slot SlotId, buildings []BuildingRule) map[string]RoomSet {
	out := make(map[string]RoomSet, len(buildings))
	for _, b := range buildings {
		out[b.Name] = idx.Rooms(slot, b.Name)
	}
	return out
}

// Annotate produces every cell of a day in slot order. The rooms of the
// previous sequential slot are carried from one iteration to the next, the
// aggregate slot neither reads nor replaces them.
func Annotate(idx Index, buildings []BuildingRule) []Cell {
	names := make([]string, len(buildings))
	for i, b := range buildings {
		names[i] = b.Name
	}
	allDay := idx.AllDay(names)

	var cells []Cell
	var prev map[string]RoomSet
	for _, slot := range AllSlots {
		var cellsForSlot []Cell
		cellsForSlot, prev = annotateSlot(idx, allDay, buildings, slot, prev)
		cells = append(cells, cellsForSlot...)
	}
	return cells
}

func annotateSlot(
	idx Index,
	allDay AllDaySet,
	buildings []BuildingRule,
	slot SlotId,
	prev map[string]RoomSet,
) ([]Cell, map[string]RoomSet) {
	current := roomsBySlot(idx, slot, buildings)

	// adjacency is undefined for the aggregate slot, it only gets bold
	view := slotView{slot: slot, allDay: allDay}
	if !slot.IsAggregate() {
		if slot != SequentialSlots[0] {
			view.prev = prev
		}
		if next, ok := slot.Next(); ok {
			view.next = roomsBySlot(idx, next, buildings)
		}
	}

	var cells []Cell
	for _, b := range buildings {
		cells = append(cells, view.cellsFor(b, current[b.Name])...)
	}

	if slot.IsAggregate() {
		return cells, prev
	}
	return cells, current
}
