package changelog

// Canonical Keep a Changelog category names in rendering order.
const (
	Added      = "Added"
	Changed    = "Changed"
	Deprecated = "Deprecated"
	Removed    = "Removed"
	Fixed      = "Fixed"
	Security   = "Security"
)

// UnreleasedHeading is the heading line of the staging block.
const UnreleasedHeading = "## Unreleased"

// TBD is the placeholder date written by Prepare and replaced by Finalize.
const TBD = "TBD"

// ValidCategories returns the list of canonical categories
// in their standard rendering order.
func ValidCategories() []string {
	return []string{Added, Changed, Deprecated, Removed, Fixed, Security}
}

// Sections maps a canonical category name to its trimmed content block.
// Only categories with at least one list item are present.
// Use Names to iterate in canonical order.
type Sections map[string]string

// Names returns the categories present in s, in canonical order.
func (s Sections) Names() []string {
	names := make([]string, 0, len(s))
	for _, name := range ValidCategories() {
		if _, ok := s[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// IsEmpty returns true if no category has content.
func (s Sections) IsEmpty() bool {
	return len(s) == 0
}

// Status is the result of Validate.
type Status struct {
	HasUnreleased bool
	HasContent    bool
}

// PrepareResult describes what Prepare moved under the new version heading.
type PrepareResult struct {
	Version string
	// Moved lists the categories re-filed under the version, canonical order.
	Moved []string
}

// Empty returns true if the Unreleased block had no list items.
func (r *PrepareResult) Empty() bool {
	return len(r.Moved) == 0
}
