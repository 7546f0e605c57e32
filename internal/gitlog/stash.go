package gitlog

import (
	"strconv"
	"strings"

	"github.com/EvSecDev/grist/internal/gitproc"
)

const stashFormat = "%gd%x00%s%x00%gs%x00%ci%x00---END---"

// GetStashes lists the stash stack.
func GetStashes(inv *gitproc.Invoker) ([]Stash, error) {
	output, err := inv.RunChecked("stash", "list", "--format="+stashFormat)
	if err != nil {
		return nil, err
	}
	return parseStashes(output), nil
}

func parseStashes(output string) []Stash {
	var stashes []Stash

	for _, entry := range strings.Split(output, "---END---") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, "\x00")
		if len(parts) < 4 {
			continue
		}

		index := parseStashIndex(parts[0])
		branch := parseStashBranch(parts[2])

		stashes = append(stashes, Stash{
			Index:   index,
			Message: parts[1],
			Branch:  branch,
			Date:    parts[3],
		})
	}

	return stashes
}

func parseStashIndex(gd string) int {
	trimmed := strings.TrimPrefix(gd, "stash@{")
	trimmed = strings.TrimSuffix(trimmed, "}")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0
	}
	return n
}

// parseStashBranch extracts the branch name from a reflog subject like
// "WIP on main: abcdef commit subject" or "On main: message". This is a
// best-effort text split on the first colon; whatever follows it, including
// further colons in the message, is ignored.
func parseStashBranch(reflogSubject string) string {
	withoutPrefix := strings.TrimPrefix(reflogSubject, "WIP on ")
	withoutPrefix = strings.TrimPrefix(withoutPrefix, "On ")
	idx := strings.Index(withoutPrefix, ":")
	if idx < 0 {
		return ""
	}
	return withoutPrefix[:idx]
}

// CreateStash stashes the current worktree changes.
func CreateStash(inv *gitproc.Invoker, message string) error {
	args := []string{"stash", "push"}
	if message != "" {
		args = append(args, "-m", message)
	}
	_, err := inv.RunChecked(args...)
	return err
}

// ApplyStash applies a stash entry without removing it from the stack.
func ApplyStash(inv *gitproc.Invoker, index int) error {
	_, err := inv.RunChecked("stash", "apply", stashRef(index))
	return err
}

// PopStash applies a stash entry and removes it from the stack.
func PopStash(inv *gitproc.Invoker, index int) error {
	_, err := inv.RunChecked("stash", "pop", stashRef(index))
	return err
}

// DropStash removes a stash entry without applying it.
func DropStash(inv *gitproc.Invoker, index int) error {
	_, err := inv.RunChecked("stash", "drop", stashRef(index))
	return err
}

// ClearStashes removes every stash entry.
func ClearStashes(inv *gitproc.Invoker) error {
	_, err := inv.RunChecked("stash", "clear")
	return err
}

func stashRef(index int) string {
	return "stash@{" + strconv.Itoa(index) + "}"
}
