package gitstatus

import (
	"strconv"
	"strings"

	"github.com/EvSecDev/grist/internal/gitproc"
)

// Get runs status and parses the result. Lists are built in a single pass
// over the NUL-delimited record stream; EOL-only detection runs a second,
// scoped diff per modified entry.
func Get(inv *gitproc.Invoker) (Status, error) {
	raw, err := inv.RunChecked("status", "--porcelain=v2", "--branch", "-z", "--untracked-files=all")
	if err != nil {
		return Status{}, err
	}

	status := Status{
		Staged:     []Entry{},
		Unstaged:   []Entry{},
		Untracked:  []Entry{},
		Conflicted: []Entry{},
	}

	tokens := strings.Split(raw, "\x00")
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if token == "" {
			continue
		}

		switch {
		case strings.HasPrefix(token, "# branch.head "):
			head := strings.TrimPrefix(token, "# branch.head ")
			if head != "(detached)" {
				status.Branch = head
			}
		case strings.HasPrefix(token, "# branch.upstream "):
			status.Upstream = strings.TrimPrefix(token, "# branch.upstream ")
		case strings.HasPrefix(token, "# branch.ab "):
			status.Ahead, status.Behind = parseAheadBehind(strings.TrimPrefix(token, "# branch.ab "))
		case strings.HasPrefix(token, "1 "):
			entry, ok := parseChanged(token)
			if ok {
				appendEntry(&status, entry)
			}
		case strings.HasPrefix(token, "2 "):
			if i+1 >= len(tokens) {
				break
			}
			i++
			entry, ok := parseRenameOrCopy(token, tokens[i])
			if ok {
				appendEntry(&status, entry)
			}
		case strings.HasPrefix(token, "u "):
			entry, ok := parseUnmerged(token)
			if ok {
				status.Conflicted = append(status.Conflicted, entry)
			}
		case strings.HasPrefix(token, "? "):
			status.Untracked = append(status.Untracked, Entry{
				Path:           strings.TrimPrefix(token, "? "),
				WorktreeStatus: Untracked,
			})
		}
	}

	detectEOLOnlyChanges(inv, &status)

	return status, nil
}

func appendEntry(status *Status, entry Entry) {
	if entry.IndexStatus != Unmodified && entry.IndexStatus != "" {
		staged := entry
		staged.WorktreeStatus = Unmodified
		status.Staged = append(status.Staged, staged)
	}
	if entry.WorktreeStatus != Unmodified && entry.WorktreeStatus != "" {
		unstaged := entry
		unstaged.IndexStatus = Unmodified
		status.Unstaged = append(status.Unstaged, unstaged)
	}
}

func parseAheadBehind(field string) (ahead, behind uint32) {
	for _, part := range strings.Fields(field) {
		if len(part) < 2 {
			continue
		}
		sign, digits := part[0], part[1:]
		n, err := strconv.ParseUint(digits, 10, 32)
		if err != nil {
			continue
		}
		switch sign {
		case '+':
			ahead = uint32(n)
		case '-':
			behind = uint32(n)
		}
	}
	return ahead, behind
}

// parseChanged parses a "1 XY ..." record. Fields are space-separated;
// the path is everything from field index 8 onward (rejoined, to tolerate
// paths containing spaces since this record form is not quoted).
func parseChanged(token string) (Entry, bool) {
	fields := strings.Split(token, " ")
	if len(fields) < 9 {
		return Entry{}, false
	}
	xy := fields[1]
	if len(xy) != 2 {
		return Entry{}, false
	}
	path := strings.Join(fields[8:], " ")
	return Entry{
		Path:           path,
		IndexStatus:    statusFromColumn(xy[0]),
		WorktreeStatus: statusFromColumn(xy[1]),
	}, true
}

// parseRenameOrCopy parses a "2 XY ..." record plus its trailing
// NUL-delimited original-path token.
func parseRenameOrCopy(token, originalPathToken string) (Entry, bool) {
	fields := strings.Split(token, " ")
	if len(fields) < 10 {
		return Entry{}, false
	}
	xy := fields[1]
	if len(xy) != 2 {
		return Entry{}, false
	}
	path := strings.Join(fields[9:], " ")
	return Entry{
		Path:           path,
		IndexStatus:    statusFromColumn(xy[0]),
		WorktreeStatus: statusFromColumn(xy[1]),
		OriginalPath:   originalPathToken,
	}, true
}

func parseUnmerged(token string) (Entry, bool) {
	fields := strings.Split(token, " ")
	if len(fields) < 11 {
		return Entry{}, false
	}
	path := strings.Join(fields[10:], " ")
	return Entry{
		Path:           path,
		IndexStatus:    Conflicted,
		WorktreeStatus: Conflicted,
	}, true
}

// detectEOLOnlyChanges runs a scoped --ignore-cr-at-eol diff for every
// modified entry, on whichever side(s) it appears. This is advisory only:
// a failed or non-empty probe simply leaves the flag false.
func detectEOLOnlyChanges(inv *gitproc.Invoker, status *Status) {
	for i := range status.Staged {
		if status.Staged[i].IndexStatus != Modified {
			continue
		}
		status.Staged[i].EOLOnlyChanges = probeEOLOnly(inv, status.Staged[i].Path, true)
	}
	for i := range status.Unstaged {
		if status.Unstaged[i].WorktreeStatus != Modified {
			continue
		}
		status.Unstaged[i].EOLOnlyChanges = probeEOLOnly(inv, status.Unstaged[i].Path, false)
	}
}

func probeEOLOnly(inv *gitproc.Invoker, path string, staged bool) bool {
	args := []string{"diff", "--ignore-cr-at-eol"}
	if staged {
		args = append(args, "--cached")
	}
	args = append(args, "--", path)

	result, err := inv.Run(args...)
	if err != nil || result.ExitCode != 0 {
		return false
	}
	return strings.TrimSpace(result.Stdout) == ""
}
