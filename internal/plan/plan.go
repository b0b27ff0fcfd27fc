// internal/plan/plan.go
package plan

import (
	"regexp"
	"strings"
	"time"
)

// ukrainianWeekdays maps Go weekdays to the day names used as headings in
// generated plans.
var ukrainianWeekdays = map[time.Weekday]string{
	time.Monday:    "Понеділок",
	time.Tuesday:   "Вівторок",
	time.Wednesday: "Середа",
	time.Thursday:  "Четвер",
	time.Friday:    "П'ятниця",
	time.Saturday:  "Субота",
	time.Sunday:    "Неділя",
}

func WeekdayName(d time.Weekday) string {
	return ukrainianWeekdays[d]
}

// DaySection extracts one day's workout from the full plan text. Day headings
// are bold lines containing the Ukrainian day name; a section runs until the
// next bold day heading. Returns "" when the plan has no heading for the day.
func DaySection(planText string, weekday time.Weekday) string {
	dayName := ukrainianWeekdays[weekday]
	if dayName == "" || planText == "" {
		return ""
	}

	headingRe := regexp.MustCompile(`(?m)^\s*\*\*[^\n]*(` + allDayNamesAlt() + `)[^\n]*\*\*`)
	locs := headingRe.FindAllStringSubmatchIndex(planText, -1)
	for i, loc := range locs {
		name := planText[loc[2]:loc[3]]
		if name != dayName {
			continue
		}
		start := loc[0]
		end := len(planText)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		return strings.TrimSpace(planText[start:end])
	}
	return ""
}

// IsRestDay reports whether a day section describes a rest day.
func IsRestDay(section string) bool {
	return strings.Contains(strings.ToLower(section), "відпочинок")
}

func allDayNamesAlt() string {
	names := make([]string, 0, len(ukrainianWeekdays))
	for d := time.Monday; ; d = (d + 1) % 7 {
		names = append(names, regexp.QuoteMeta(ukrainianWeekdays[d]))
		if d == time.Sunday {
			break
		}
	}
	return strings.Join(names, "|")
}
