package transform

import (
	"regexp"
	"strings"
)

// span matches a block from a start line to the first following end line.
type span struct {
	start *regexp.Regexp
	end   *regexp.Regexp
}

func compileSpan(kind, start, end string) (span, error) {
	s, err := compilePattern(kind, "start_pattern", start)
	if err != nil {
		return span{}, err
	}
	e, err := compilePattern(kind, "end_pattern", end)
	if err != nil {
		return span{}, err
	}
	return span{start: s, end: e}, nil
}

// RemoveBlock drops every span that begins at a line matching StartPattern
// and ends at the first subsequent line matching EndPattern, both inclusive.
// Spans do not nest; an unterminated span runs to the end of the file.
type RemoveBlock struct {
	StartPattern string `yaml:"start_pattern" validate:"required"`
	EndPattern   string `yaml:"end_pattern" validate:"required"`
	Target       string `yaml:"target"`

	span span
}

// NewRemoveBlock returns a compiled RemoveBlock transform.
func NewRemoveBlock(startPattern, endPattern, target string) (*RemoveBlock, error) {
	r := &RemoveBlock{StartPattern: startPattern, EndPattern: endPattern, Target: target}
	if err := r.compile(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RemoveBlock) compile() error {
	s, err := compileSpan(KindRemoveBlock, r.StartPattern, r.EndPattern)
	if err != nil {
		return err
	}
	r.span = s
	return nil
}

// Kind implements Transform.
func (r *RemoveBlock) Kind() string { return KindRemoveBlock }

// Apply implements Transform.
func (r *RemoveBlock) Apply(path string) error {
	return rewriteFile(path, r.Target, r.remove)
}

func (r *RemoveBlock) remove(content string) string {
	var b strings.Builder
	skipping := false
	for _, line := range splitLines(content) {
		text := chomp(line)
		if !skipping && r.span.start.MatchString(text) {
			skipping = true
			continue
		}
		if skipping {
			if r.span.end.MatchString(text) {
				skipping = false
			}
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}

// ReplaceBlock replaces the first span (same detection as RemoveBlock) with
// Replacement. With KeepStart the start line is written before the
// replacement. Later spans pass through unchanged.
type ReplaceBlock struct {
	StartPattern string `yaml:"start_pattern" validate:"required"`
	EndPattern   string `yaml:"end_pattern" validate:"required"`
	Replacement  string `yaml:"replacement"`
	KeepStart    bool   `yaml:"keep_start"`
	Target       string `yaml:"target"`

	span span
}

// NewReplaceBlock returns a compiled ReplaceBlock transform.
func NewReplaceBlock(startPattern, endPattern, replacement string, keepStart bool, target string) (*ReplaceBlock, error) {
	r := &ReplaceBlock{
		StartPattern: startPattern,
		EndPattern:   endPattern,
		Replacement:  replacement,
		KeepStart:    keepStart,
		Target:       target,
	}
	if err := r.compile(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ReplaceBlock) compile() error {
	s, err := compileSpan(KindReplaceBlock, r.StartPattern, r.EndPattern)
	if err != nil {
		return err
	}
	r.span = s
	return nil
}

// Kind implements Transform.
func (r *ReplaceBlock) Kind() string { return KindReplaceBlock }

// Apply implements Transform.
func (r *ReplaceBlock) Apply(path string) error {
	return rewriteFile(path, r.Target, r.replace)
}

func (r *ReplaceBlock) replace(content string) string {
	replacement := r.Replacement
	if replacement != "" && !strings.HasSuffix(replacement, "\n") {
		replacement += "\n"
	}

	var b strings.Builder
	skipping, replaced := false, false
	for _, line := range splitLines(content) {
		text := chomp(line)
		if !replaced && !skipping && r.span.start.MatchString(text) {
			skipping = true
			if r.KeepStart {
				b.WriteString(line)
			}
			b.WriteString(replacement)
			continue
		}
		if skipping {
			if r.span.end.MatchString(text) {
				skipping = false
				replaced = true
			}
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}
