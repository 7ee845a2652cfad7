package freeroom

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is one step of the sanitizer. Apply returns the (possibly rewritten)
// record and false if the record should be discarded. Rules must not mutate
// their input.
type Rule struct {
	Name  string
	Apply func(CanonicalRecord) (CanonicalRecord, bool)
}

func keepUnless(name string, discard func(CanonicalRecord) bool) Rule {
	return Rule{
		Name: name,
		Apply: func(r CanonicalRecord) (CanonicalRecord, bool) {
			return r, !discard(r)
		},
	}
}

// DefaultRules returns the sanitizer pipeline in the order it must run in.
// later rules rely on invariants established by earlier ones (ex. the rename
// rule never sees a forbidden building).
func DefaultRules() []Rule {
	return []Rule{
		keepUnless("discard-blank", func(r CanonicalRecord) bool {
			return r.Building == "" && r.EquipmentTag == ""
		}),
		keepUnless("discard-missing-equipment", func(r CanonicalRecord) bool {
			return r.EquipmentTag == "" && r.Building != ""
		}),
		keepUnless("discard-zero-capacity", func(r CanonicalRecord) bool {
			return r.Capacity == "0"
		}),
		{Name: "strip-admin-fields", Apply: stripAdminFields},
		keepUnless("discard-forbidden-equipment", func(r CanonicalRecord) bool {
			_, forbidden := forbiddenEquipment[r.EquipmentTag]
			return forbidden
		}),
		keepUnless("discard-forbidden-building", func(r CanonicalRecord) bool {
			_, forbidden := forbiddenBuildings[r.Building]
			return forbidden
		}),
		{Name: "rewrite-room-name", Apply: rewriteRoomName},
	}
}

func stripAdminFields(r CanonicalRecord) (CanonicalRecord, bool) {
	_, hasCampus := r.Extra[ColumnCampus]
	_, hasSequence := r.Extra[ColumnSequence]
	if !hasCampus && !hasSequence {
		return r, true
	}
	r = r.clone()
	delete(r.Extra, ColumnCampus)
	delete(r.Extra, ColumnSequence)
	return r, true
}

// a room code is digits with an optional capital letter, optionally followed
// by a dash-suffix group (ex. 101, 1A, 6026-A, 302-2B)
var roomCodeRegex = regexp.MustCompile(`^\d+[A-Z]?(?:-\d+[A-Z\d-]*)?$`)

var selfStudyRegexes = func() map[string]*regexp.Regexp {
	out := map[string]*regexp.Regexp{}
	for _, b := range Buildings {
		if b.Variant != VariantSelfStudy {
			continue
		}
		out[b.Name] = regexp.MustCompile(fmt.Sprintf(
			`^%s([A-Z])%s(.+)$`,
			regexp.QuoteMeta(selfStudyNameMarker),
			regexp.QuoteMeta(b.Prefix),
		))
	}
	return out
}()

// stripPrefix returns the room code if name is the building prefix followed
// by a room code.
func stripPrefix(b BuildingRule, name string) (string, bool) {
	if b.Prefix == "" || !strings.HasPrefix(name, b.Prefix) {
		return "", false
	}
	code := strings.TrimPrefix(name, b.Prefix)
	if !roomCodeRegex.MatchString(code) {
		return "", false
	}
	return code, true
}

// rewriteSelfStudy turns "自主学习室Q科技楼6026-A" into "6026-A自习室Q".
func rewriteSelfStudy(b BuildingRule, name string) (string, bool) {
	re, ok := selfStudyRegexes[b.Name]
	if !ok {
		return "", false
	}
	groups := re.FindStringSubmatch(name)
	if len(groups) < 3 {
		return "", false
	}
	letter, code := groups[1], groups[2]
	return code + selfStudyMarker + letter, true
}

func rewriteRoomName(r CanonicalRecord) (CanonicalRecord, bool) {
	b, ok := LookupBuilding(r.Building)
	if !ok {
		return r, true
	}

	if code, ok := stripPrefix(b, r.Name); ok {
		r.Name = code
		return r, true
	}
	if b.Variant != VariantSelfStudy {
		return r, true
	}

	renamed, ok := rewriteSelfStudy(b, r.Name)
	if !ok {
		return r, false
	}
	r.Name = renamed
	return r, true
}

// SanitizeRecord folds a single record through rules.
func SanitizeRecord(raw RawRecord, rules []Rule) (CanonicalRecord, bool) {
	record := fromRaw(raw)
	for _, rule := range rules {
		var keep bool
		record, keep = rule.Apply(record)
		if !keep {
			return CanonicalRecord{}, false
		}
	}
	return record, true
}

// Sanitize applies rules to every raw record of a day, preserving input order.
func Sanitize(raw []RawRecord, rules []Rule) []CanonicalRecord {
	out := make([]CanonicalRecord, 0, len(raw))
	for _, r := range raw {
		record, keep := SanitizeRecord(r, rules)
		if keep {
			out = append(out, record)
		}
	}
	return out
}
