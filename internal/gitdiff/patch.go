package gitdiff

import (
	"fmt"
	"strings"

	"github.com/EvSecDev/grist/internal/gitproc"
)

// StageLines stages a selection of lines from path's unstaged diff by
// synthesising a partial patch and applying it to the index.
func StageLines(inv *gitproc.Invoker, path string, selections []LineSelection) error {
	diff, err := GetFileDiff(inv, path, false)
	if err != nil {
		return err
	}
	patch := GeneratePartialPatch(diff, selections)
	if patch == "" {
		return nil
	}
	result, err := inv.RunWithStdin([]string{"apply", "--cached", "--unidiff-zero"}, patch)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return &gitproc.CommandFailedError{Code: result.ExitCode, Stderr: result.Stderr}
	}
	return nil
}

// UnstageLines unstages a selection of lines from path's staged diff by
// synthesising a partial patch and applying it in reverse to the index.
func UnstageLines(inv *gitproc.Invoker, path string, selections []LineSelection) error {
	diff, err := GetFileDiff(inv, path, true)
	if err != nil {
		return err
	}
	patch := GeneratePartialPatch(diff, selections)
	if patch == "" {
		return nil
	}
	result, err := inv.RunWithStdin([]string{"apply", "--cached", "--unidiff-zero", "--reverse"}, patch)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return &gitproc.CommandFailedError{Code: result.ExitCode, Stderr: result.Stderr}
	}
	return nil
}

// GeneratePartialPatch builds a unified diff containing only the selected
// lines of each hunk. Hunks with no selected indices, or whose selection
// resolves to zero emitted additions/deletions (including a selection that
// lands only on context lines), are dropped entirely; a selection covering
// no hunk at all yields an empty patch, which callers treat as a no-op.
func GeneratePartialPatch(diff FileDiff, selections []LineSelection) string {
	selectedByHunk := make(map[int]map[int]bool)
	for _, sel := range selections {
		if selectedByHunk[sel.HunkIndex] == nil {
			selectedByHunk[sel.HunkIndex] = make(map[int]bool)
		}
		selectedByHunk[sel.HunkIndex][sel.LineIndex] = true
	}

	oldPath := diff.OldPath
	if oldPath == "" {
		oldPath = diff.NewPath
	}

	var body strings.Builder
	wroteAnyHunk := false

	for hunkIdx, hunk := range diff.Hunks {
		selected := selectedByHunk[hunkIdx]
		if len(selected) == 0 {
			continue
		}

		var hunkBody strings.Builder
		oldCount, newCount := 0, 0
		emittedAdditions, emittedDeletions := 0, 0

		for lineIdx, line := range hunk.Lines {
			switch line.Kind {
			case Context:
				hunkBody.WriteByte(' ')
				hunkBody.WriteString(line.Content)
				hunkBody.WriteByte('\n')
				oldCount++
				newCount++
			case Addition:
				if selected[lineIdx] {
					hunkBody.WriteByte('+')
					hunkBody.WriteString(line.Content)
					hunkBody.WriteByte('\n')
					newCount++
					emittedAdditions++
				}
			case Deletion:
				if selected[lineIdx] {
					hunkBody.WriteByte('-')
					hunkBody.WriteString(line.Content)
					hunkBody.WriteByte('\n')
					oldCount++
					emittedDeletions++
				}
			}
		}

		if emittedAdditions == 0 && emittedDeletions == 0 {
			continue
		}

		if !wroteAnyHunk {
			body.WriteString(fmt.Sprintf("diff --git a/%s b/%s\n", oldPath, diff.NewPath))
			body.WriteString(fmt.Sprintf("--- a/%s\n", oldPath))
			body.WriteString(fmt.Sprintf("+++ b/%s\n", diff.NewPath))
			wroteAnyHunk = true
		}

		body.WriteString(fmt.Sprintf("@@ -%d,%d +%d,%d @@\n", hunk.OldStart, oldCount, hunk.NewStart, newCount))
		body.WriteString(hunkBody.String())
	}

	if !wroteAnyHunk {
		return ""
	}
	return body.String()
}
