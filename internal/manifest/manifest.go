package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/devkit/internal/transform"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Entry is a single copy-and-transform rule.
type Entry struct {
	Src        string           `yaml:"src" validate:"required"`
	Dest       string           `yaml:"dest"`
	Transforms []transform.Spec `yaml:"transforms"`
}

// Destination returns Dest, or Src when Dest is empty.
func (e Entry) Destination() string {
	if e.Dest == "" {
		return e.Src
	}
	return e.Dest
}

// IsTransformed returns true if the entry has a non-empty transform chain.
func (e Entry) IsTransformed() bool {
	return len(e.Transforms) > 0
}

// TransformKinds returns the kinds of the entry's chain in order.
func (e Entry) TransformKinds() []string {
	kinds := make([]string, 0, len(e.Transforms))
	for _, spec := range e.Transforms {
		kinds = append(kinds, spec.Transform.Kind())
	}
	return kinds
}

// document is the on-disk manifest layout.
type document struct {
	Entries []Entry `yaml:"entries"`
}

// EntryError reports an invalid manifest entry.
type EntryError struct {
	Index   int
	Src     string
	Message string
}

func (e *EntryError) Error() string {
	if e.Src != "" {
		return fmt.Sprintf("entries[%d] (%s): %s", e.Index, e.Src, e.Message)
	}
	return fmt.Sprintf("entries[%d]: %s", e.Index, e.Message)
}

// IsEntryError returns true if the error is an EntryError.
func IsEntryError(err error) bool {
	var ee *EntryError
	return errors.As(err, &ee)
}

// Load reads and validates the manifest at path.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	entries, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// LoadFromReader reads and validates a manifest from an io.Reader.
func LoadFromReader(r io.Reader) ([]Entry, error) {
	var doc document

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing manifest YAML: %w", err)
	}

	for i, entry := range doc.Entries {
		if err := validateEntry(i, entry); err != nil {
			return nil, err
		}
	}

	return doc.Entries, nil
}

// validateEntry checks required fields and that both paths stay inside
// their roots.
func validateEntry(index int, e Entry) error {
	if err := validate.Struct(e); err != nil {
		return &EntryError{Index: index, Message: "src is required"}
	}
	if !filepath.IsLocal(e.Src) {
		return &EntryError{Index: index, Src: e.Src, Message: "src must be a relative path inside the project root"}
	}
	if e.Dest != "" && !filepath.IsLocal(e.Dest) {
		return &EntryError{Index: index, Src: e.Src, Message: fmt.Sprintf("dest %q must be a relative path inside the destination", e.Dest)}
	}
	return nil
}

// Filter returns the entries to list; with transformedOnly set, only
// entries with a transform chain are kept.
func Filter(entries []Entry, transformedOnly bool) []Entry {
	if !transformedOnly {
		return entries
	}
	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsTransformed() {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
