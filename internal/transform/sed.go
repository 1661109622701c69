package transform

import (
	"fmt"
	"regexp"
)

// Sed replaces every non-overlapping match of Pattern in the whole file.
// Replace uses Go regexp expansion syntax ($1, ${name}).
type Sed struct {
	Pattern string `yaml:"pattern" validate:"required"`
	Replace string `yaml:"replace"`
	Target  string `yaml:"target"`

	re *regexp.Regexp
}

// NewSed returns a compiled Sed transform.
func NewSed(pattern, replace, target string) (*Sed, error) {
	s := &Sed{Pattern: pattern, Replace: replace, Target: target}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sed) compile() error {
	re, err := compilePattern(KindSed, "pattern", s.Pattern)
	if err != nil {
		return err
	}
	s.re = re
	return nil
}

// Kind implements Transform.
func (s *Sed) Kind() string { return KindSed }

// Apply implements Transform.
func (s *Sed) Apply(path string) error {
	return rewriteFile(path, s.Target, func(content string) string {
		return s.re.ReplaceAllString(content, s.Replace)
	})
}

// compilePattern compiles a manifest regex, naming the transform and field on failure.
func compilePattern(kind, field, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid %s %q: %w", kind, field, pattern, err)
	}
	return re, nil
}
