package recommendation

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

// Category names one questionnaire option list.
type Category string

const (
	CategoryTrip             Category = "trip"
	CategoryDistance         Category = "distance"
	CategoryValue            Category = "value"
	CategoryLocationInterest Category = "location_interest"
	CategoryActivity         Category = "activity"
	CategoryEmotional        Category = "emotional"
)

// Unspecified replaces any code that has no catalog entry.
const Unspecified = "ไม่ระบุ"

// catalog matches the seeded lookup tables.
var catalog = map[Category]map[int]string{
	CategoryTrip: {
		1: "เที่ยวคนเดียว",
		2: "เที่ยวกับครอบครัว",
		3: "เที่ยวกับเพื่อน",
		4: "เที่ยวกับคนรัก",
	},
	CategoryDistance: {
		1: "ใกล้ (ไม่เกิน 10 กิโลเมตร)",
		2: "ปานกลาง (10-50 กิโลเมตร)",
		3: "ไกล (50-100 กิโลเมตร)",
		4: "ไกลมาก (มากกว่า 100 กิโลเมตร)",
	},
	CategoryValue: {
		1: "ประหยัด (ไม่เกิน 500 บาท)",
		2: "ปานกลาง (500-1,500 บาท)",
		3: "สูง (1,500-5,000 บาท)",
		4: "ไม่จำกัดงบประมาณ",
	},
	CategoryLocationInterest: {
		1: "ทะเล",
		2: "ภูเขา",
		3: "เมือง",
		4: "ธรรมชาติและน้ำตก",
		5: "วัฒนธรรมและประวัติศาสตร์",
		6: "คาเฟ่และร้านอาหาร",
	},
	CategoryActivity: {
		1: "สวนสนุกและสวนน้ำ",
		2: "สวนสาธารณะ",
		3: "คาเฟ่และกิจกรรมต่างๆ",
		4: "งานศิลปะและนิทรรศการ",
		5: "วัดและสถานที่โบราณ",
		6: "ร้านอาหารและเครื่องดื่ม",
		7: "ห้างสรรพสินค้า",
		8: "สปาและออนเซ็น",
	},
	CategoryEmotional: {
		1: "มีความสุข",
		2: "ผ่อนคลาย",
		3: "เครียด",
		4: "เหนื่อยล้า",
		5: "ตื่นเต้น",
	},
}

// Translate turns a code of the given category into its display string.
//
// Single-choice categories take an int. CategoryActivity takes a []int and
// yields the translations joined with ", ", skipping repeated codes; anything
// else, including an empty list, yields Unspecified. An unknown category
// returns the value formatted as-is.
func Translate(category Category, value interface{}) string {
	names, known := catalog[category]
	if !known {
		return fmt.Sprint(value)
	}

	if category == CategoryActivity {
		codes, ok := value.([]int)
		if !ok || len(codes) == 0 {
			return Unspecified
		}
		seen := make(map[int]struct{}, len(codes))
		parts := make([]string, 0, len(codes))
		for _, code := range codes {
			if _, dup := seen[code]; dup {
				continue
			}
			seen[code] = struct{}{}
			parts = append(parts, lookup(names, code))
		}
		return strings.Join(parts, ", ")
	}

	code, ok := value.(int)
	if !ok {
		return Unspecified
	}
	return lookup(names, code)
}

func lookup(names map[int]string, code int) string {
	if name, ok := names[code]; ok {
		return name
	}
	return Unspecified
}

// Choices is a questionnaire answer in display form.
type Choices struct {
	Latitude         float64
	Longitude        float64
	Trip             string
	Distance         string
	Value            string
	LocationInterest string
	Activities       string
	Emotional        string
}

func TranslateAnswer(a types.QuestionnaireAnswer) Choices {
	return Choices{
		Latitude:         a.Latitude,
		Longitude:        a.Longitude,
		Trip:             Translate(CategoryTrip, a.TripID),
		Distance:         Translate(CategoryDistance, a.DistanceID),
		Value:            Translate(CategoryValue, a.ValueID),
		LocationInterest: Translate(CategoryLocationInterest, a.LocationInterestID),
		Activities:       Translate(CategoryActivity, a.ActivityID),
		Emotional:        Translate(CategoryEmotional, a.EmotionalID),
	}
}
