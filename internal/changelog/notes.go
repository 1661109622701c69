package changelog

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// Notes returns the body of the "## [<version>]" entry of the changelog at
// path, up to the next "## " heading. The result is suitable for forge
// release notes.
func Notes(path, version string) (string, error) {
	if err := ValidateVersion(version); err != nil {
		return "", err
	}

	content, _, err := readDocument(path)
	if err != nil {
		return "", err
	}

	body, ok := extractVersionBody(content, version)
	if !ok {
		return "", &StructuralError{Path: path, Element: "## [" + version + "]", Err: ErrVersionNotFound}
	}
	return body, nil
}

// extractVersionBody returns the trimmed text between the version heading
// and the next second-level heading.
func extractVersionBody(content, version string) (string, bool) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !isVersionHeading(trimLine(line), version) {
			continue
		}
		var body []string
		for _, next := range lines[i+1:] {
			if strings.HasPrefix(next, "## ") {
				break
			}
			body = append(body, next)
		}
		return strings.TrimSpace(strings.Join(body, "\n")), true
	}
	return "", false
}

// RenderNotesHTML converts release notes markdown to HTML.
func RenderNotesHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering release notes: %w", err)
	}
	return buf.String(), nil
}
