package freeroom

import "strings"

type Variant int

const (
	VariantNone Variant = iota
	// rooms that are not renamed by the prefix rule must be self-study rooms,
	// they are rendered in their own bucket
	VariantSelfStudy
)

// BuildingRule is the single place building-specific behavior is looked up.
type BuildingRule struct {
	// display name, as it appears in the 教学楼 column
	Name string
	// short code used in report cell ids
	Code string
	// the literal stripped off room names, empty disables the rewrite.
	// this is not always equal to Name (综合实验楼 rooms are named 综合楼...)
	Prefix  string
	Variant Variant
	// when set, the building is rendered one cell per floor, a room belongs
	// to the floor whose first character it starts with
	Floors []string
	// the separator rooms are joined with inside a cell
	Separator string
}

const (
	separatorSpace = " "
	separatorBreak = "<br>"

	selfStudyMarker     = "自习室"
	selfStudyNameMarker = "自主学习室"
)

var Buildings = []BuildingRule{
	{
		Name:      "工学馆",
		Code:      "GXG",
		Prefix:    "工学馆",
		Floors:    []string{"1F", "2F", "3F", "4F", "5F", "6F", "7F"},
		Separator: separatorSpace,
	},
	{Name: "基础楼", Code: "JCL", Prefix: "基础楼", Separator: separatorBreak},
	{Name: "综合实验楼", Code: "ZHSYL", Prefix: "综合楼", Separator: separatorBreak},
	{Name: "地质楼", Code: "DZL", Separator: separatorBreak},
	{Name: "管理楼", Code: "GLL", Prefix: "管理楼", Separator: separatorBreak},
	{
		Name:      "科技楼",
		Code:      "KJL",
		Prefix:    "科技楼",
		Variant:   VariantSelfStudy,
		Separator: separatorSpace,
	},
	{Name: "人文楼", Code: "RWL", Prefix: "人文楼", Separator: separatorSpace},
}

var buildingsByName = func() map[string]BuildingRule {
	out := make(map[string]BuildingRule, len(Buildings))
	for _, b := range Buildings {
		out[b.Name] = b
	}
	return out
}()

// LookupBuilding returns the rule for a building display name.
func LookupBuilding(name string) (BuildingRule, bool) {
	b, ok := buildingsByName[name]
	return b, ok
}

// BuildingNames returns the display names of every known building in report order.
func BuildingNames() []string {
	out := make([]string, len(Buildings))
	for i, b := range Buildings {
		out[i] = b.Name
	}
	return out
}

// FloorOf returns the floor a room belongs to, or false if it matches none.
func (b BuildingRule) FloorOf(room string) (string, bool) {
	for _, f := range b.Floors {
		if strings.HasPrefix(room, f[:1]) {
			return f, true
		}
	}
	return "", false
}

var forbiddenEquipment = map[string]struct{}{
	"体育教学场地": {},
	"机房":     {},
	"实验室":    {},
	"活动教室":   {},
	"研讨室":    {},
	"多功能":    {},
	"智慧教室":   {},
	"不排课教室":  {},
	"语音室":    {},
}

var forbiddenBuildings = map[string]struct{}{
	"大学会馆": {},
	"旧实验楼": {},
}
