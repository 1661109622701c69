package errors

import (
	"fmt"
	"strings"
)

// InvalidVersion creates an error for a version that is not X.Y.Z.
func InvalidVersion(version string, cause error) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  fmt.Sprintf("invalid semantic version %q", version),
		Usage:    "devkit changelog prepare <X.Y.Z> [path]",
		Remediation: []string{
			"Use three dot-separated numbers, e.g. 1.2.3",
			"Drop any leading 'v' and pre-release suffix",
		},
		Cause: cause,
	}
}

// InvalidDate creates an error for a release date that is not YYYY-MM-DD.
func InvalidDate(date string, cause error) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  fmt.Sprintf("invalid release date %q", date),
		Usage:    "devkit changelog finalize <X.Y.Z> <YYYY-MM-DD> [path]",
		Remediation: []string{
			"Use an ISO calendar date, e.g. 2024-06-01",
		},
		Cause: cause,
	}
}

// ChangelogNotFound creates an error for a missing changelog file.
func ChangelogNotFound(path string, cause error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("changelog not found: %s", path),
		Remediation: []string{
			"Pass the changelog path explicitly: devkit changelog <command> ... <path>",
			"Or set changelog_path in .devkit/config.yml",
		},
		Cause: cause,
	}
}

// MissingUnreleased creates an error when the changelog has no Unreleased section.
func MissingUnreleased(path string, cause error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("no Unreleased section found in %s", path),
		Remediation: []string{
			"Recreate it with: devkit changelog reset " + path,
			"The heading must be exactly '## Unreleased'",
		},
		Cause: cause,
	}
}

// UnreleasedExists creates an error when reset finds an Unreleased section.
func UnreleasedExists(path string, cause error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("Unreleased section already exists in %s", path),
		Remediation: []string{
			"Nothing to reset; the file was left unchanged",
		},
		Cause: cause,
	}
}

// HeadingNotFound creates an error when finalize cannot find the TBD heading.
func HeadingNotFound(version, path string, cause error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("version heading '## [%s] - TBD' not found in %s", version, path),
		Remediation: []string{
			"Prepare the version first: devkit changelog prepare " + version,
			"Check the version number matches the prepared heading",
		},
		Cause: cause,
	}
}

// AlreadyFinalized creates an error when the version already has a date.
func AlreadyFinalized(version, path string, cause error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("version %s is already finalized in %s", version, path),
		Remediation: []string{
			"Finalize runs once per version; edit the date by hand if it is wrong",
		},
		Cause: cause,
	}
}

// NotesNotFound creates an error when no heading exists for the version.
func NotesNotFound(version, path string, cause error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("no '## [%s]' heading in %s", version, path),
		Remediation: []string{
			"List released versions with: grep '^## \\[' " + path,
		},
		Cause: cause,
	}
}

// ManifestInvalid creates an error for a manifest that failed to load.
func ManifestInvalid(path string, cause error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("invalid sync manifest: %v", cause),
		Remediation: []string{
			"Check the manifest at " + path,
			"Every entry needs a relative 'src'; see 'devkit manifest list --help' for transform types",
		},
		Cause: cause,
	}
}

// MissingSources creates an error when sync could not find some sources.
func MissingSources(srcs []string, cause error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  fmt.Sprintf("%d manifest source(s) missing: %s", len(srcs), strings.Join(srcs, ", ")),
		Remediation: []string{
			"Other entries were synced; fix or remove the missing entries and re-run",
			"Sources resolve against --project-root",
		},
		Cause: cause,
	}
}

// DestinationOverlap creates an error when a sync destination would
// overwrite its own source.
func DestinationOverlap(dest, src string, cause error) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  fmt.Sprintf("sync destination %s overlaps source %s", dest, src),
		Usage:    "devkit manifest sync <dest_dir>",
		Remediation: []string{
			"Pick a destination outside the template's source paths",
			"Nothing was copied",
		},
		Cause: cause,
	}
}

// ConfigInvalid creates an error for a configuration that failed to load.
func ConfigInvalid(cause error) *CLIError {
	return Wrap(cause, Configuration,
		"failed to load config",
		"Check .devkit/config.yml and ~/.config/devkit/config.yml",
		"Regenerate a commented template with: devkit config init --force",
	)
}

// NotRepository creates an error when a git repository is required.
func NotRepository(path string, cause error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("not a git repository: %s", path),
		Remediation: []string{
			"Run the command from inside the project checkout",
		},
		Cause: cause,
	}
}

// PreflightFailed creates an error listing the failed release checks.
func PreflightFailed(failed []string) *CLIError {
	return New(Prerequisite,
		fmt.Sprintf("release preflight failed: %s", strings.Join(failed, "; ")),
		"Resolve the failed checks above and re-run 'devkit release preflight'",
	)
}
