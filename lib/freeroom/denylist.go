package freeroom

import (
	"errors"
	"freeroom/lib/configutil"
	"log/slog"
	"os"
)

// Denylist maps a building to the rooms that are always excluded. Room names
// are compared against the post-rewrite name, exactly.
type Denylist map[string][]string

type roomKey struct {
	building string
	name     string
}

// DenySet is the lookup form of a Denylist.
type DenySet map[roomKey]struct{}

func (d Denylist) Set() DenySet {
	out := DenySet{}
	for building, rooms := range d {
		for _, room := range rooms {
			out[roomKey{building: building, name: room}] = struct{}{}
		}
	}
	return out
}

func (s DenySet) Contains(building, name string) bool {
	_, ok := s[roomKey{building: building, name: name}]
	return ok
}

// Filter returns the records whose (building, name) pair is not denied.
func (s DenySet) Filter(records []CanonicalRecord) []CanonicalRecord {
	if len(s) == 0 {
		return records
	}
	out := make([]CanonicalRecord, 0, len(records))
	for _, r := range records {
		if s.Contains(r.Building, r.Name) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// LoadDenylist reads a json5 denylist, if the file is missing or broken an
// empty denylist is returned, the denylist is an enrichment and must never
// stop a report from being generated.
func LoadDenylist(path string) Denylist {
	if path == "" {
		return Denylist{}
	}
	denylist, err := configutil.ReadConfig[Denylist](path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("denylist not found, continuing without it", "path", path)
		return Denylist{}
	}
	if err != nil {
		slog.Warn("failed to read denylist, continuing without it", "path", path, "err", err)
		return Denylist{}
	}
	if denylist == nil {
		return Denylist{}
	}
	return denylist
}
