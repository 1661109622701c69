package changelog

import (
	"fmt"
	"strings"
)

// Preamble is the fixed document header written by Prepare.
const Preamble = `# Changelog

All notable changes to this project will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

`

// RenderUnreleased returns an empty staging block with every canonical
// category header and no list items.
func RenderUnreleased() string {
	var b strings.Builder
	b.WriteString(UnreleasedHeading + "\n\n")
	for _, name := range ValidCategories() {
		b.WriteString("### " + name + "\n\n")
	}
	return b.String()
}

// FormatVersionHeader formats the heading line for a version entry.
func FormatVersionHeader(version, date string) string {
	return fmt.Sprintf("## [%s] - %s", version, date)
}

// Assemble builds a full document: preamble, an empty Unreleased block, the
// new "## [<version>] - TBD" entry with the non-empty sections in canonical
// order, and rest (prior version entries) verbatim.
//
// The function is idempotent - given the same input, it produces identical output.
func Assemble(version string, sections Sections, rest string) string {
	var b strings.Builder
	b.WriteString(Preamble)
	b.WriteString(RenderUnreleased())
	b.WriteString(FormatVersionHeader(version, TBD) + "\n\n")

	for _, name := range sections.Names() {
		b.WriteString("### " + name + "\n\n")
		b.WriteString(sections[name] + "\n\n")
	}

	b.WriteString(rest)
	return b.String()
}
