package changelog

import (
	"fmt"
	"os"
	"strings"
)

// readDocument loads the whole changelog file.
func readDocument(path string) (string, os.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", 0, fmt.Errorf("changelog file %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("reading changelog %s: %w", path, err)
	}
	return string(data), info.Mode().Perm(), nil
}

// writeDocument overwrites the changelog file, keeping its permissions.
func writeDocument(path, content string, mode os.FileMode) error {
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("writing changelog %s: %w", path, err)
	}
	return nil
}

// Prepare moves the Unreleased content of the changelog at path under a new
// "## [<version>] - TBD" heading and regenerates an empty Unreleased block.
//
// An Unreleased block without list items is not an error: the new version
// entry is written with no sections and PrepareResult.Empty reports it.
func Prepare(path, version string) (*PrepareResult, error) {
	if err := ValidateVersion(version); err != nil {
		return nil, err
	}

	content, mode, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	b, ok := locateUnreleased(content)
	if !ok {
		return nil, &StructuralError{Path: path, Element: UnreleasedHeading, Err: ErrNoUnreleased}
	}

	sections := parseSections(content[b.start:b.end])
	rest := restAfterUnreleased(content, b)

	if err := writeDocument(path, Assemble(version, sections, rest), mode); err != nil {
		return nil, err
	}

	return &PrepareResult{Version: version, Moved: sections.Names()}, nil
}

// Validate reports whether the changelog at path has an Unreleased block and
// whether that block contains list items. Only an unreadable file is an error;
// callers decide whether a missing or empty block is fatal.
func Validate(path string) (Status, error) {
	content, _, err := readDocument(path)
	if err != nil {
		return Status{}, err
	}

	b, ok := locateUnreleased(content)
	if !ok {
		return Status{}, nil
	}

	sections := parseSections(content[b.start:b.end])
	return Status{HasUnreleased: true, HasContent: !sections.IsEmpty()}, nil
}

// Reset inserts an empty Unreleased block before the first version heading.
// It fails without touching the file if an Unreleased block already exists.
func Reset(path string) error {
	content, mode, err := readDocument(path)
	if err != nil {
		return err
	}

	if HasUnreleased(content) {
		return &StructuralError{Path: path, Element: UnreleasedHeading, Err: ErrUnreleasedExists}
	}

	return writeDocument(path, insertUnreleased(content), mode)
}

// insertUnreleased places a fresh Unreleased block before the first line
// beginning with "## [", or at the end of the document when there is none.
func insertUnreleased(content string) string {
	idx, _ := findHeading(content, func(line string) bool {
		return strings.HasPrefix(line, "## [")
	})
	if idx < 0 {
		trimmed := strings.TrimRight(content, "\n")
		if trimmed == "" {
			return RenderUnreleased()
		}
		return trimmed + "\n\n" + RenderUnreleased()
	}
	return content[:idx] + RenderUnreleased() + content[idx:]
}

// Finalize replaces the TBD placeholder of "## [<version>] - TBD" with date.
// All other bytes of the document are left unchanged.
func Finalize(path, version, date string) error {
	if err := ValidateVersion(version); err != nil {
		return err
	}
	if err := ValidateDate(date); err != nil {
		return err
	}

	content, mode, err := readDocument(path)
	if err != nil {
		return err
	}

	target := FormatVersionHeader(version, TBD)
	idx, _ := findHeading(content, func(line string) bool { return line == target })
	if idx < 0 {
		return finalizeNotFound(path, content, version, target)
	}

	// The heading line is target plus optional trailing blanks; only the TBD
	// token is rewritten.
	tbdAt := idx + len(target) - len(TBD)
	updated := content[:tbdAt] + date + content[tbdAt+len(TBD):]

	return writeDocument(path, updated, mode)
}

// finalizeNotFound distinguishes a version that was never prepared from one
// that already carries a release date.
func finalizeNotFound(path, content, version, target string) error {
	idx, heading := findHeading(content, func(line string) bool {
		return isVersionHeading(line, version)
	})
	if idx >= 0 {
		return &StructuralError{Path: path, Element: heading, Err: ErrAlreadyFinalized}
	}
	return &StructuralError{Path: path, Element: target, Err: ErrVersionNotFound}
}
