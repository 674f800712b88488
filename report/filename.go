package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

const defaultFilenameTemplate = "report_{{.Timestamp}}"

type filenameData struct {
	Timestamp string
	Date      string
}

// resolveFilename returns the requested file name, or a generated default
// when the caller omitted one. The .pdf extension is always enforced.
func resolveFilename(requested string, now time.Time) (string, error) {
	name := strings.TrimSpace(requested)
	if name == "" {
		tmpl, err := template.New("filename").Parse(defaultFilenameTemplate)
		if err != nil {
			return "", err
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, filenameData{
			Timestamp: now.UTC().Format("20060102T150405Z"),
			Date:      now.UTC().Format("20060102"),
		}); err != nil {
			return "", err
		}
		name = strings.TrimSpace(buf.String())
	}
	if name == "" {
		return "", fmt.Errorf("empty filename")
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name, nil
}
