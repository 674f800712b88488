package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FieldMap holds the flat profile fields backing a report. A key may be
// missing entirely, present with a nil value, or carry a string/number.
type FieldMap map[string]any

// recognizedFields enumerates the payload keys the service accepts.
// Anything else in the request body is dropped before rendering.
var recognizedFields = []string{
	"name", "region", "community", "age", "status", "img",
	"interests", "team", "position", "webinars", "trips", "tasks",
	"leadershipAcademy", "communityActivities", "outsideActivities",
	"feadback", "giverPosition", "giver",
	"previousMonths", "previousCourses", "previousTrips", "previousVolunteering", "previousTasks",
	"currentMonths", "currentCourses", "currentTrips", "currentVolunteering", "currentTasks",
	"date", "futurePlans",
	"storyImg", "storyTitle", "storyText", "storyLink",
}

// listFields render as a paragraph or bullet list depending on line count.
var listFields = map[string]bool{
	"interests":         true,
	"webinars":          true,
	"team":              true,
	"position":          true,
	"trips":             true,
	"tasks":             true,
	"leadershipAcademy": true,
}

// previousPeriodFields gate the trend chart section. All five must be
// non-blank for the chart to survive pruning.
var previousPeriodFields = []string{
	"previousMonths", "previousCourses", "previousTrips", "previousVolunteering", "previousTasks",
}

// FieldMapFromPayload filters a decoded JSON payload down to recognized
// fields and derives the display date. Unrecognized keys are silently
// ignored; they have no matching template token anyway.
func FieldMapFromPayload(payload map[string]any) FieldMap {
	fields := make(FieldMap, len(recognizedFields))
	for _, key := range recognizedFields {
		value, ok := payload[key]
		if !ok {
			continue
		}
		fields[key] = value
	}
	if raw, ok := fields["date"]; ok {
		fields["date"] = FormatDate(Stringify(raw))
	}
	return fields
}

// IsListField reports whether a field renders with list formatting.
func IsListField(name string) bool {
	return listFields[name]
}

// Has reports whether the field key is present at all (nil counts as present).
func (f FieldMap) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// BlankField reports whether the named field is blank in this map.
func (f FieldMap) BlankField(name string) bool {
	value, ok := f[name]
	if !ok {
		return true
	}
	return Blank(value)
}

// Blank reports whether a value is absent, null, or whitespace-only once
// stringified. Numeric zero and the string "0" are not blank.
func Blank(value any) bool {
	if value == nil {
		return true
	}
	return strings.TrimSpace(Stringify(value)) == ""
}

// Stringify renders a field value as a string. JSON numbers arrive as
// float64; integral values must not pick up a trailing ".0".
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// FormatDate reshapes an ISO date (YYYY-MM-DD) into "DD / MM / YYYY".
// Empty input yields empty output; anything that is not an ISO date
// passes through unchanged.
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return parsed.Format("02 / 01 / 2006")
}
