package changelog

import (
	"regexp"
	"time"
)

var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// ValidateVersion checks that version is a bare three-component semantic
// version: no "v" prefix, no pre-release or build suffix.
func ValidateVersion(version string) error {
	if !versionPattern.MatchString(version) {
		return &ValidationError{Field: "semantic version", Value: version, Expected: "X.Y.Z"}
	}
	return nil
}

// ValidateDate checks that date is a real calendar date in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return &ValidationError{Field: "date", Value: date, Expected: "YYYY-MM-DD"}
	}
	return nil
}
