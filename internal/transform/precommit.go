package transform

import (
	"regexp"
	"strings"
)

var hookIDPattern = regexp.MustCompile(`^\s*-\s+id:\s*['"]?([^'"\s#]+)['"]?\s*(#.*)?$`)

// RemovePrecommitHooks removes hooks by id from a .pre-commit-config.yaml
// and then drops any "- repo: local" entry left without hooks.
type RemovePrecommitHooks struct {
	HookIDs []string `yaml:"hook_ids" validate:"min=1,dive,required"`
	Target  string   `yaml:"target"`
}

// Kind implements Transform.
func (r *RemovePrecommitHooks) Kind() string { return KindRemovePrecommitHooks }

// Apply implements Transform.
func (r *RemovePrecommitHooks) Apply(path string) error {
	ids := make(map[string]bool, len(r.HookIDs))
	for _, id := range r.HookIDs {
		ids[id] = true
	}

	return rewriteFile(path, r.Target, func(content string) string {
		lines := removeHooks(splitLines(content), ids)
		lines = pruneEmptyLocalRepos(lines)
		return strings.Join(lines, "")
	})
}

// removeHooks drops each "- id: <id>" hook whose id is in ids, together with
// its body. A hook body ends at the next "- id:" or "- repo:" line or at a
// blank line; that terminating line is kept.
func removeHooks(lines []string, ids map[string]bool) []string {
	out := make([]string, 0, len(lines))
	skipping := false

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if skipping {
			if stripped != "" && !strings.HasPrefix(stripped, "- id:") && !strings.HasPrefix(stripped, "- repo:") {
				continue
			}
			skipping = false
		}

		if m := hookIDPattern.FindStringSubmatch(chomp(line)); m != nil && ids[m[1]] {
			skipping = true
			continue
		}
		out = append(out, line)
	}

	return out
}

// pruneEmptyLocalRepos drops "- repo: local" entries that no longer contain
// a "- id:" line. A comment line directly above a dropped entry is treated
// as its header and dropped with it.
func pruneEmptyLocalRepos(lines []string) []string {
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		if !isLocalRepo(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}

		end := repoBlockEnd(lines, i)
		block := lines[i:end]
		if hasHook(block) {
			out = append(out, block...)
		} else if n := len(out); n > 0 && isComment(out[n-1]) {
			out = out[:n-1]
		}
		i = end
	}

	return out
}

func isLocalRepo(line string) bool {
	stripped := strings.TrimSpace(line)
	if !strings.HasPrefix(stripped, "- repo:") {
		return false
	}
	value := strings.TrimSpace(strings.TrimPrefix(stripped, "- repo:"))
	return strings.Trim(value, `'"`) == "local"
}

// repoBlockEnd returns the index of the first line after start that is not
// blank and is indented no deeper than the repo line itself.
func repoBlockEnd(lines []string, start int) int {
	indent := indentOf(lines[start])
	for j := start + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == "" {
			continue
		}
		if indentOf(lines[j]) <= indent {
			return j
		}
	}
	return len(lines)
}

func hasHook(block []string) bool {
	for _, line := range block {
		if strings.HasPrefix(strings.TrimSpace(line), "- id:") {
			return true
		}
	}
	return false
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
