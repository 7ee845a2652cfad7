package report

import (
	"fmt"
	"freeroom/lib/freeroom"
	"html"
	"strings"
)

var slotLabels = map[freeroom.SlotId]string{
	freeroom.Slot1_2:   "上午第1-2节",
	freeroom.Slot3_4:   "上午第3-4节",
	freeroom.Slot5_6:   "下午第5-6节",
	freeroom.Slot7_8:   "下午第7-8节",
	freeroom.Slot9_10:  "晚上第9-10节",
	freeroom.Slot11_12: "晚上第11-12节",
	freeroom.Slot1_8:   "昼间第1-8节",
}

// Skeleton builds a bare template with every placeholder and cell the
// generator fills, it is used when no template file is configured.
func Skeleton(days int, buildings []freeroom.BuildingRule) string {
	if buildings == nil {
		buildings = freeroom.Buildings
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"zh-CN\">\n<head>\n<meta charset=\"utf-8\">\n<title>空闲教室</title>\n")
	b.WriteString(patternPlaceholder)
	b.WriteString("\n</head>\n<body>\n")
	b.WriteString("<p class=\"update-time\">更新时间: <span id=\"update-time-placeholder\"></span></p>\n")
	b.WriteString("<div class=\"emergency-info\"></div>\n")

	for day := 0; day < days; day++ {
		fmt.Fprintf(&b, "<div id=\"day-%d-content\">\n<div class=\"tab-container\">\n<table>\n<tr><th></th>", day)
		for _, slot := range freeroom.AllSlots {
			fmt.Fprintf(&b, "<th>%s</th>", slotLabels[slot])
		}
		b.WriteString("</tr>\n")

		for _, building := range buildings {
			floors := building.Floors
			if len(floors) == 0 {
				floors = []string{""}
			}
			for _, floor := range floors {
				fmt.Fprintf(&b, "<tr><th>%s%s</th>", html.EscapeString(building.Name), floor)
				for _, slot := range freeroom.AllSlots {
					key := freeroom.CellKey{Slot: slot, Building: building.Name, Floor: floor}
					fmt.Fprintf(&b, "<td id=\"%s\"></td>", CellId(day, building.Code, key))
				}
				b.WriteString("</tr>\n")
			}
		}
		b.WriteString("</table>\n</div>\n</div>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}
