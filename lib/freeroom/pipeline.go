package freeroom

// Day is the result of running the whole pipeline over one day of raw
// records.
type Day struct {
	// sanitized and denylist-filtered records, in input order
	Records []CanonicalRecord
	Index   Index
	AllDay  AllDaySet
	Cells   []Cell

	// number of records before and after each stage
	RawCount       int
	SanitizedCount int
}

type Options struct {
	// defaults to DefaultRules()
	Rules     []Rule
	Denylist  DenySet
	Buildings []BuildingRule
}

// Process runs sanitize -> denylist -> index -> annotate. Empty input yields
// an empty day with every cell empty, it is not an error.
func Process(raw []RawRecord, opts Options) Day {
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	buildings := opts.Buildings
	if buildings == nil {
		buildings = Buildings
	}

	sanitized := Sanitize(raw, rules)
	records := opts.Denylist.Filter(sanitized)
	return FromCanonical(records, buildings, len(raw), len(sanitized))
}

// FromCanonical builds the indices and cells of a day whose records have
// already been sanitized (ex. read back from a processed snapshot).
func FromCanonical(records []CanonicalRecord, buildings []BuildingRule, rawCount, sanitizedCount int) Day {
	if buildings == nil {
		buildings = Buildings
	}
	idx := BuildIndex(records)
	names := make([]string, len(buildings))
	for i, b := range buildings {
		names[i] = b.Name
	}
	return Day{
		Records:        records,
		Index:          idx,
		AllDay:         idx.AllDay(names),
		Cells:          Annotate(idx, buildings),
		RawCount:       rawCount,
		SanitizedCount: sanitizedCount,
	}
}

// Cell looks up a cell by key.
func (d Day) Cell(key CellKey) (Cell, bool) {
	for _, c := range d.Cells {
		if c.Key == key {
			return c, true
		}
	}
	return Cell{}, false
}
