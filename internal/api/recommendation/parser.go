package recommendation

import (
	"regexp"
	"strings"
)

// MaxPlaces is the most records one generation yields.
const MaxPlaces = 5

const (
	defaultName         = "ไม่ทราบชื่อสถานที่"
	defaultDescription  = "ไม่มีรายละเอียด"
	defaultLocation     = "ไม่ระบุที่ตั้ง"
	defaultOpenDay      = "ไม่ระบุวันเปิดทำการ"
	defaultTimeSchedule = "ไม่ระบุเวลาเปิด-ปิด"
	defaultDistance     = "ไม่ระบุระยะทาง"
)

var blankLine = regexp.MustCompile(`\n[ \t]*\n`)

type ParsedPlace struct {
	Name         string
	Description  string
	Location     string
	OpenDay      string
	TimeSchedule string
	Distance     string
}

// ParsePlaces splits generated text into blank-line separated sections and
// reads each by line position: name, description, location, open days,
// hours, distance. A line counts only if it carries a "label:" prefix;
// missing or unlabeled lines get a default. At most MaxPlaces are returned
// and short output is not padded.
func ParsePlaces(text string) []ParsedPlace {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var places []ParsedPlace
	for _, section := range blankLine.Split(text, -1) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		lines := strings.Split(section, "\n")
		places = append(places, ParsedPlace{
			Name:         labeledValue(lines, 0, defaultName),
			Description:  labeledValue(lines, 1, defaultDescription),
			Location:     labeledValue(lines, 2, defaultLocation),
			OpenDay:      labeledValue(lines, 3, defaultOpenDay),
			TimeSchedule: labeledValue(lines, 4, defaultTimeSchedule),
			Distance:     labeledValue(lines, 5, defaultDistance),
		})
		if len(places) == MaxPlaces {
			break
		}
	}
	return places
}

func labeledValue(lines []string, i int, fallback string) string {
	if i >= len(lines) {
		return fallback
	}
	_, value, found := strings.Cut(lines[i], ":")
	value = strings.TrimSpace(value)
	if !found || value == "" {
		return fallback
	}
	return value
}
