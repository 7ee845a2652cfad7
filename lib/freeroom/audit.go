package freeroom

import (
	"freeroom/lib/textutil"
	"slices"
	"strings"
)

// StaleEntry is a denylist entry that matched no room on any audited day.
type StaleEntry struct {
	Building string
	Room     string
	// the most similar room of the same building, empty when the building
	// has no rooms at all
	Suggestion string
	Score      float64
}

// Audit finds denylist entries that never match, usually because the room
// was written with its prefix or the portal renamed it.
func (d Denylist) Audit(days []Day) []StaleEntry {
	seen := map[string]RoomSet{}
	for _, day := range days {
		for _, r := range day.Records {
			rooms, ok := seen[r.Building]
			if !ok {
				rooms = RoomSet{}
				seen[r.Building] = rooms
			}
			rooms[r.Name] = struct{}{}
		}
	}

	buildings := make([]string, 0, len(d))
	for b := range d {
		buildings = append(buildings, b)
	}
	slices.Sort(buildings)

	var out []StaleEntry
	for _, building := range buildings {
		candidates := seen[building].Sorted()
		for _, room := range d[building] {
			if seen[building].Has(room) {
				continue
			}
			entry := StaleEntry{Building: building, Room: room}
			query := room
			if rule, ok := LookupBuilding(building); ok && rule.Prefix != "" {
				query = strings.TrimPrefix(room, rule.Prefix)
			}
			best, score, ok := textutil.Closest(query, candidates)
			if ok {
				entry.Suggestion = best
				entry.Score = score
			}
			out = append(out, entry)
		}
	}
	return out
}
