package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"freeroom/lib/freeroom"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	rawFilePrefix = "classroom_results_"
	rawFileSuffix = ".json"
	ProcessedFile = "processed_classroom_data.json"
)

// DayDir returns <dataDir>/output-day-<offset>.
func DayDir(dataDir string, offset int) string {
	return filepath.Join(dataDir, fmt.Sprintf("output-day-%d", offset))
}

// RawFileName is the file a slot's scraped rows are stored in.
func RawFileName(slot freeroom.SlotId) string {
	return rawFilePrefix + string(slot) + rawFileSuffix
}

func writeJSON(path string, v any) error {
	contents, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	err = os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		return err
	}
	return os.WriteFile(path, contents, 0644)
}

// WriteRawSlot stores the rows scraped for one slot of a day.
func WriteRawSlot(dir string, slot freeroom.SlotId, records []freeroom.RawRecord) error {
	rows := make([]map[string]string, len(records))
	for i, r := range records {
		rows[i] = r.Fields
	}
	return writeJSON(filepath.Join(dir, RawFileName(slot)), rows)
}

// ReadRawDay reads every slot file of a day directory and tags each row with
// the slot named by its file. Files with an unknown slot are skipped. A
// missing directory is an empty day.
func ReadRawDay(dir string) ([]freeroom.RawRecord, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("day directory not found", "dir", dir)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []freeroom.RawRecord
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, rawFilePrefix) || !strings.HasSuffix(name, rawFileSuffix) {
			continue
		}
		slot, err := freeroom.ParseSlot(strings.TrimSuffix(strings.TrimPrefix(name, rawFilePrefix), rawFileSuffix))
		if err != nil {
			slog.Warn("skipping raw file with unknown slot", "file", name, "err", err)
			continue
		}

		contents, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		var rows []map[string]string
		err = json.Unmarshal(contents, &rows)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		for _, row := range rows {
			out = append(out, freeroom.RawRecord{Slot: slot, Fields: row})
		}
	}
	return out, nil
}

// WriteProcessed stores the canonical records of a day.
func WriteProcessed(dir string, records []freeroom.CanonicalRecord) error {
	if records == nil {
		records = []freeroom.CanonicalRecord{}
	}
	return writeJSON(filepath.Join(dir, ProcessedFile), records)
}

// ReadProcessed reads the canonical records of a day, a missing file is an
// empty day.
func ReadProcessed(dir string) ([]freeroom.CanonicalRecord, error) {
	contents, err := os.ReadFile(filepath.Join(dir, ProcessedFile))
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("processed data not found", "dir", dir)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var records []freeroom.CanonicalRecord
	err = json.Unmarshal(contents, &records)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", ProcessedFile, err)
	}
	return records, nil
}
