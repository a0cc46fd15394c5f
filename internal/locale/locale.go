// Package locale carries the chart translations and the text transforms the
// renderer needs. Arabic strings are shaped to presentation forms before
// drawing because the chart renderer has no shaping engine of its own, and
// Japanese strings get full-width digits and punctuation per Japanese
// typographic convention.
package locale

import (
	"fmt"
	"strings"

	garabic "github.com/abdullahdiaa/garabic"
	"golang.org/x/text/width"
)

// Language identifies one of the supported chart languages.
type Language string

const (
	English  Language = "english"
	Arabic   Language = "arabic"
	Japanese Language = "japanese"
)

// Script groups languages by the font support they need.
type Script string

const (
	ScriptDefault Script = "default"
	ScriptArabic  Script = "arabic"
	ScriptCJK     Script = "cjk"
)

// All lists the supported languages in canonical output order.
func All() []Language {
	return []Language{English, Arabic, Japanese}
}

// Parse converts a config string to a Language.
func Parse(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, nil
	case Arabic:
		return Arabic, nil
	case Japanese:
		return Japanese, nil
	}
	return "", fmt.Errorf("unknown language %q", s)
}

// Script returns the font script group for the language.
func (l Language) Script() Script {
	switch l {
	case Arabic:
		return ScriptArabic
	case Japanese:
		return ScriptCJK
	}
	return ScriptDefault
}

// DisplayName returns the English name of the language for CLI feedback.
func (l Language) DisplayName() string {
	switch l {
	case Arabic:
		return "Arabic"
	case Japanese:
		return "Japanese"
	}
	return "English"
}

// Strings holds the draw-ready chart text for one language: series labels,
// axis labels, and month tick names.
type Strings struct {
	Sunrise string
	Noon    string
	Sunset  string
	XAxis   string
	YAxis   string
	Months  [12]string
}

var englishStrings = Strings{
	Sunrise: "Sunrise",
	Noon:    "Solar Noon",
	Sunset:  "Sunset",
	XAxis:   "Gregorian Month",
	YAxis:   "Time of Day",
	Months: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

// Levantine month names, as used alongside the Gregorian calendar in the
// eastern Arab world.
var arabicStrings = Strings{
	Sunrise: "شروق الشمس",
	Noon:    "الظهر",
	Sunset:  "غروب الشمس",
	XAxis:   "الشهر الميلادي",
	YAxis:   "وقت اليوم",
	Months: [12]string{
		"كانون الثاني", "شباط", "آذار", "نيسان", "أيار", "حزيران",
		"تموز", "آب", "أيلول", "تشرين الأول", "تشرين الثاني", "كانون الأول",
	},
}

var japaneseStrings = Strings{
	Sunrise: "日の出",
	Noon:    "正午",
	Sunset:  "日の入り",
	XAxis:   "西暦の月",
	YAxis:   "時刻",
	Months: [12]string{
		"１月", "２月", "３月", "４月", "５月", "６月",
		"７月", "８月", "９月", "１０月", "１１月", "１２月",
	},
}

// ForLanguage returns the chart strings for a language with all display
// transforms already applied.
func ForLanguage(l Language) Strings {
	switch l {
	case Arabic:
		return shapeStrings(arabicStrings)
	case Japanese:
		return japaneseStrings
	}
	return englishStrings
}

func shapeStrings(s Strings) Strings {
	shaped := Strings{
		Sunrise: garabic.Shape(s.Sunrise),
		Noon:    garabic.Shape(s.Noon),
		Sunset:  garabic.Shape(s.Sunset),
		XAxis:   garabic.Shape(s.XAxis),
		YAxis:   garabic.Shape(s.YAxis),
	}
	for i, month := range s.Months {
		shaped.Months[i] = garabic.Shape(month)
	}
	return shaped
}

// Title formats the chart title for a language, substituting the localized
// location name and year. The result is draw-ready.
func (l Language) Title(location string, year int) string {
	switch l {
	case Arabic:
		return garabic.Shape(fmt.Sprintf("%s - رسم بياني لشروق وغروب الشمس لعام %d", location, year))
	case Japanese:
		return toFullwidth(fmt.Sprintf("%s - %d年の日の出と日の入りのグラフ", location, year))
	}
	return fmt.Sprintf("%s - Sunrise and Sunset Graph for %d", location, year)
}

// HourLabel formats an hour-of-day axis tick such as "06:00".
func (l Language) HourLabel(hour int) string {
	label := fmt.Sprintf("%02d:00", hour)
	if l == Japanese {
		return toFullwidth(label)
	}
	return label
}

// toFullwidth converts ASCII digits and the punctuation Japanese typography
// widens to their full-width forms. Other runes pass through untouched.
func toFullwidth(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ':
			return '　' // ideographic space
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', ':', '-', '/':
			return width.LookupRune(r).Wide()
		}
		return r
	}, s)
}
