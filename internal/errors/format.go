package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// style is the decoration for one output mode. Plain output matches the
// status words output.Printer uses so scripts can grep for FAIL.
type style struct {
	mark     string
	hint     string
	message  func(a ...any) string
	category func(a ...any) string
	usage    func(a ...any) string
}

var (
	fancyStyle = style{
		mark:     color.New(color.FgRed, color.Bold).Sprint("✗"),
		hint:     color.New(color.FgGreen).Sprint("→"),
		message:  color.New(color.Bold).SprintFunc(),
		category: color.New(color.FgYellow).SprintFunc(),
		usage:    color.New(color.FgCyan).SprintFunc(),
	}
	plainStyle = style{
		mark:     "FAIL",
		hint:     "-",
		message:  fmt.Sprint,
		category: fmt.Sprint,
		usage:    fmt.Sprint,
	}
)

// Format renders err as a status line followed by usage and hints:
//
//	FAIL changelog not found: CHANGELOG.md (prerequisite)
//	  usage: devkit changelog validate [path]
//	  - Pass the changelog path explicitly
//
// Plain mode uses ASCII marks and no escape sequences.
func Format(err *CLIError, plain bool) string {
	if err == nil {
		return ""
	}
	s := fancyStyle
	if plain {
		s = plainStyle
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s (%s)\n", s.mark, s.message(err.Message), s.category(err.Category))
	if err.Usage != "" {
		fmt.Fprintf(&sb, "  usage: %s\n", s.usage(err.Usage))
	}
	for _, step := range err.Remediation {
		fmt.Fprintf(&sb, "  %s %s\n", s.hint, step)
	}
	return sb.String()
}

// FprintError writes Format(err, plain) to w.
func FprintError(w io.Writer, err *CLIError, plain bool) {
	fmt.Fprint(w, Format(err, plain))
}
