// Package changelog implements release-cycle edits on a Keep a Changelog
// formatted CHANGELOG.md.
//
// This package implements:
//   - Extraction of the "## Unreleased" staging block into canonical sections
//   - Re-filing staged content under a "## [X.Y.Z] - TBD" heading (Prepare)
//   - Advisory checks used by CI to gate releases (Validate)
//   - Re-insertion of an empty staging block after a release (Reset)
//   - Replacement of the TBD placeholder with the release date (Finalize)
//   - Release-notes extraction for a single version (Notes)
//
// Every operation reads the whole file, transforms it in memory, and writes
// the whole file back. No state is carried between calls.
package changelog
