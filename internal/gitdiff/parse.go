package gitdiff

import (
	"strconv"
	"strings"

	"github.com/EvSecDev/grist/internal/gitproc"
)

// GetFileDiff runs diff for one path, staged or unstaged, and parses it.
func GetFileDiff(inv *gitproc.Invoker, path string, staged bool) (FileDiff, error) {
	args := []string{"diff"}
	if staged {
		args = append(args, "--cached")
	}
	args = append(args, "--", path)

	output, err := inv.RunChecked(args...)
	if err != nil {
		return FileDiff{}, err
	}
	return ParseDiff(output, path), nil
}

// GetCommitDiff runs `show` on hash and splits the result into one FileDiff
// per file touched by the commit.
func GetCommitDiff(inv *gitproc.Invoker, hash string) ([]FileDiff, error) {
	output, err := inv.RunChecked("show", "--format=", hash)
	if err != nil {
		return nil, err
	}
	return ParseMultiDiff(output), nil
}

// ParseDiff parses a single unified diff fragment. defaultPath is used for
// NewPath when the fragment carries no "diff --git" header, as happens with
// a single-file `git diff -- path` invocation whose output omits it only in
// degenerate cases; it is otherwise overwritten by the header.
func ParseDiff(output, defaultPath string) FileDiff {
	diff := FileDiff{NewPath: defaultPath}

	var hunk *Hunk
	var oldLine, newLine int

	flush := func() {
		if hunk != nil {
			annotateIntraline(hunk)
			diff.Hunks = append(diff.Hunks, *hunk)
			hunk = nil
		}
	}

	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git"):
			if oldPath, newPath, ok := parseDiffHeader(line); ok {
				diff.OldPath = oldPath
				diff.NewPath = newPath
			}
		case strings.HasPrefix(line, "Binary files"):
			diff.Binary = true
		case strings.HasPrefix(line, "@@"):
			flush()
			oldStart, oldCount, newStart, newCount, ok := parseHunkHeader(line)
			if !ok {
				continue
			}
			hunk = &Hunk{OldStart: oldStart, OldCount: oldCount, NewStart: newStart, NewCount: newCount}
			oldLine, newLine = oldStart, newStart
		default:
			if hunk == nil {
				continue
			}
			if line == "" {
				continue
			}
			switch line[0] {
			case '+':
				diff.Additions++
				hunk.Lines = append(hunk.Lines, Line{Kind: Addition, Content: line[1:], NewLine: newLine})
				newLine++
			case '-':
				diff.Deletions++
				hunk.Lines = append(hunk.Lines, Line{Kind: Deletion, Content: line[1:], OldLine: oldLine})
				oldLine++
			case ' ':
				hunk.Lines = append(hunk.Lines, Line{Kind: Context, Content: line[1:], OldLine: oldLine, NewLine: newLine})
				oldLine++
				newLine++
			}
		}
	}
	flush()

	return diff
}

// ParseMultiDiff splits combined `show` output at each "diff --git" marker
// and parses each fragment independently.
func ParseMultiDiff(output string) []FileDiff {
	var diffs []FileDiff
	var current strings.Builder
	var currentPath string

	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "diff --git") {
			if current.Len() > 0 {
				diffs = append(diffs, ParseDiff(current.String(), currentPath))
				current.Reset()
			}
			if _, newPath, ok := parseDiffHeader(line); ok {
				currentPath = newPath
			}
		}
		current.WriteString(line)
		current.WriteByte('\n')
	}
	if current.Len() > 0 {
		diffs = append(diffs, ParseDiff(current.String(), currentPath))
	}

	return diffs
}

func parseDiffHeader(line string) (oldPath, newPath string, ok bool) {
	parts := strings.Fields(line)
	if len(parts) < 4 {
		return "", "", false
	}
	return strings.TrimPrefix(parts[2], "a/"), strings.TrimPrefix(parts[3], "b/"), true
}

func parseHunkHeader(line string) (oldStart, oldCount, newStart, newCount int, ok bool) {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return 0, 0, 0, 0, false
	}
	old := strings.TrimPrefix(parts[1], "-")
	newRange := strings.TrimPrefix(parts[2], "+")

	oldStart, oldCount = parseRange(old)
	newStart, newCount = parseRange(newRange)
	return oldStart, oldCount, newStart, newCount, true
}

func parseRange(rng string) (start, count int) {
	parts := strings.SplitN(rng, ",", 2)
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		start = 1
	}
	count = 1
	if len(parts) == 2 {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			count = n
		}
	}
	return start, count
}
