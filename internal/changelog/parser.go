package changelog

import (
	"strings"
)

// block is a byte range [start, end) within a document.
type block struct {
	start int
	end   int
}

// trimLine strips the line terminator and trailing blanks from a heading line.
func trimLine(line string) string {
	return strings.TrimRight(line, " \t\r\n")
}

// locateUnreleased finds the Unreleased block: from the "## Unreleased" line
// up to, but not including, the next line beginning with "## [".
// The block ends at EOF when no version heading follows.
func locateUnreleased(content string) (block, bool) {
	offset := 0
	start := -1
	for _, line := range strings.SplitAfter(content, "\n") {
		if start < 0 {
			if trimLine(line) == UnreleasedHeading {
				start = offset
			}
		} else if strings.HasPrefix(line, "## [") {
			return block{start: start, end: offset}, true
		}
		offset += len(line)
	}
	if start < 0 {
		return block{}, false
	}
	return block{start: start, end: len(content)}, true
}

// HasUnreleased returns true if content contains an "## Unreleased" heading.
func HasUnreleased(content string) bool {
	_, ok := locateUnreleased(content)
	return ok
}

// ExtractUnreleased returns the non-empty canonical sections of the
// Unreleased block. A section is kept only when one of its lines, after
// trimming, starts with "-". Continuation and nested lines are kept verbatim.
func ExtractUnreleased(content string) (Sections, error) {
	b, ok := locateUnreleased(content)
	if !ok {
		return nil, ErrNoUnreleased
	}
	return parseSections(content[b.start:b.end]), nil
}

// parseSections captures, for each canonical category, the text after its
// "### <Name>" heading up to the next "##"/"###" heading.
func parseSections(text string) Sections {
	lines := strings.Split(text, "\n")
	sections := make(Sections)

	for _, name := range ValidCategories() {
		heading := "### " + name
		for i, line := range lines {
			if trimLine(line) != heading {
				continue
			}
			body := captureUntilHeading(lines[i+1:])
			if hasListItem(body) {
				sections[name] = strings.TrimSpace(body)
			}
			break
		}
	}

	return sections
}

// captureUntilHeading joins lines until one starts with "##".
func captureUntilHeading(lines []string) string {
	var captured []string
	for _, line := range lines {
		if strings.HasPrefix(line, "##") {
			break
		}
		captured = append(captured, line)
	}
	return strings.Join(captured, "\n")
}

func hasListItem(body string) bool {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "-") {
			return true
		}
	}
	return false
}

// restAfterUnreleased returns everything from the first "\n## [" following
// the Unreleased heading, without the leading newline. Returns "" when the
// Unreleased block runs to the end of the document.
func restAfterUnreleased(content string, b block) string {
	idx := strings.Index(content[b.start:], "\n## [")
	if idx < 0 {
		return ""
	}
	return content[b.start+idx+1:]
}

// findHeading returns the byte offset and text of the first line satisfying
// match, or -1 when none does.
func findHeading(content string, match func(line string) bool) (int, string) {
	offset := 0
	for _, line := range strings.SplitAfter(content, "\n") {
		if match(trimLine(line)) {
			return offset, trimLine(line)
		}
		offset += len(line)
	}
	return -1, ""
}

// isVersionHeading reports whether line is "## [<version>]" optionally
// followed by " - <date>".
func isVersionHeading(line, version string) bool {
	prefix := "## [" + version + "]"
	if !strings.HasPrefix(line, prefix) {
		return false
	}
	rest := line[len(prefix):]
	return rest == "" || strings.HasPrefix(rest, " - ")
}
