package report

import (
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// Render substitutes {{ name }} tokens in an HTML template with values
// from the field map. Tokens whose key is missing from the map are left
// in place verbatim so they stay visible downstream; this is deliberate,
// not an error. Values are trusted markup-bearing text and are not
// escaped. Non-token text passes through untouched.
func Render(template string, fields FieldMap) string {
	return tokenPattern.ReplaceAllStringFunc(template, func(token string) string {
		name := tokenPattern.FindStringSubmatch(token)[1]
		value, ok := fields[name]
		if !ok {
			return token
		}
		if IsListField(name) {
			return renderList(Stringify(value))
		}
		return strings.ReplaceAll(Stringify(value), "\n", "<br>")
	})
}

// renderList splits a value into non-blank trimmed lines. A single line
// renders as a paragraph; otherwise each line becomes a list item with
// one leading "- " marker stripped. A blank value degrades to an empty
// list.
func renderList(value string) string {
	lines := make([]string, 0, 4)
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 1 {
		return "<p>" + lines[0] + "</p>"
	}

	var b strings.Builder
	b.WriteString("<ul>")
	for _, line := range lines {
		item := strings.TrimSpace(strings.TrimPrefix(line, "- "))
		b.WriteString("<li>")
		b.WriteString(item)
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}
