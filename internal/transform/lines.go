package transform

import (
	"regexp"
	"strings"
	"unicode"
)

// RemoveLines drops every line in which Pattern matches.
// Retained lines keep their original line endings.
type RemoveLines struct {
	Pattern string `yaml:"pattern" validate:"required"`
	Target  string `yaml:"target"`

	re *regexp.Regexp
}

// NewRemoveLines returns a compiled RemoveLines transform.
func NewRemoveLines(pattern, target string) (*RemoveLines, error) {
	r := &RemoveLines{Pattern: pattern, Target: target}
	if err := r.compile(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RemoveLines) compile() error {
	re, err := compilePattern(KindRemoveLines, "pattern", r.Pattern)
	if err != nil {
		return err
	}
	r.re = re
	return nil
}

// Kind implements Transform.
func (r *RemoveLines) Kind() string { return KindRemoveLines }

// Apply implements Transform.
func (r *RemoveLines) Apply(path string) error {
	return rewriteFile(path, r.Target, func(content string) string {
		var b strings.Builder
		for _, line := range splitLines(content) {
			if r.re.MatchString(chomp(line)) {
				continue
			}
			b.WriteString(line)
		}
		return b.String()
	})
}

// StripTrailingBlankLines trims trailing whitespace and blank lines and ends
// the file with exactly one newline.
type StripTrailingBlankLines struct {
	Target string `yaml:"target"`
}

// Kind implements Transform.
func (s *StripTrailingBlankLines) Kind() string { return KindStripTrailingBlankLines }

// Apply implements Transform.
func (s *StripTrailingBlankLines) Apply(path string) error {
	return rewriteFile(path, s.Target, func(content string) string {
		return strings.TrimRightFunc(content, unicode.IsSpace) + "\n"
	})
}
