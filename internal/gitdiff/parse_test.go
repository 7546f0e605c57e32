package gitdiff

import (
	"strings"
	"testing"
)

const sampleDiff = `diff --git a/foo.txt b/foo.txt
index 1234567..89abcde 100644
--- a/foo.txt
+++ b/foo.txt
@@ -1,3 +1,4 @@
 line one
-line two
+line two changed
+line three new
 line four
`

func TestParseDiffCounters(t *testing.T) {
	diff := ParseDiff(sampleDiff, "foo.txt")
	if diff.OldPath != "foo.txt" || diff.NewPath != "foo.txt" {
		t.Fatalf("paths = %q/%q, want foo.txt/foo.txt", diff.OldPath, diff.NewPath)
	}
	if len(diff.Hunks) != 1 {
		t.Fatalf("got %d hunks, want 1", len(diff.Hunks))
	}
	hunk := diff.Hunks[0]
	if hunk.OldStart != 1 || hunk.OldCount != 3 || hunk.NewStart != 1 || hunk.NewCount != 4 {
		t.Errorf("hunk header = %+v, want {1 3 1 4 ...}", hunk)
	}
	if diff.Additions != 2 || diff.Deletions != 1 {
		t.Errorf("additions/deletions = %d/%d, want 2/1", diff.Additions, diff.Deletions)
	}

	var lastOld, lastNew int
	for _, line := range hunk.Lines {
		switch line.Kind {
		case Context:
			if line.OldLine <= lastOld || line.NewLine <= lastNew {
				t.Errorf("context line counters did not advance monotonically: %+v", line)
			}
			lastOld, lastNew = line.OldLine, line.NewLine
		case Deletion:
			if line.OldLine <= lastOld {
				t.Errorf("deletion line old counter did not advance: %+v", line)
			}
			lastOld = line.OldLine
		case Addition:
			if line.NewLine <= lastNew {
				t.Errorf("addition line new counter did not advance: %+v", line)
			}
			lastNew = line.NewLine
		}
	}
}

func TestParseDiffBinary(t *testing.T) {
	const binDiff = `diff --git a/img.png b/img.png
index 1234567..89abcde 100644
Binary files a/img.png and b/img.png differ
`
	diff := ParseDiff(binDiff, "img.png")
	if !diff.Binary {
		t.Errorf("Binary = false, want true")
	}
	if len(diff.Hunks) != 0 {
		t.Errorf("got %d hunks for binary diff, want 0", len(diff.Hunks))
	}
}

func TestParseHunkHeaderDefaultsCountToOne(t *testing.T) {
	oldStart, oldCount, newStart, newCount, ok := parseHunkHeader("@@ -5 +5 @@")
	if !ok {
		t.Fatalf("parseHunkHeader returned ok=false")
	}
	if oldStart != 5 || oldCount != 1 || newStart != 5 || newCount != 1 {
		t.Errorf("got (%d,%d,%d,%d), want (5,1,5,1)", oldStart, oldCount, newStart, newCount)
	}
}

func TestGeneratePartialPatchSelectionOnlyAddition(t *testing.T) {
	diff := ParseDiff(sampleDiff, "foo.txt")
	// Select only the addition at index 2 ("line three new").
	patch := GeneratePartialPatch(diff, []LineSelection{{HunkIndex: 0, LineIndex: 2}})
	if patch == "" {
		t.Fatalf("expected non-empty patch")
	}
	if !strings.Contains(patch, "+line three new") {
		t.Errorf("patch missing selected addition:\n%s", patch)
	}
	if strings.Contains(patch, "line two changed") {
		t.Errorf("patch contains unselected addition:\n%s", patch)
	}
	if !strings.Contains(patch, " line one") || !strings.Contains(patch, " line four") {
		t.Errorf("patch missing context lines:\n%s", patch)
	}
}

func TestGeneratePartialPatchContextOnlySelectionIsNoOp(t *testing.T) {
	diff := ParseDiff(sampleDiff, "foo.txt")
	// Select only the context line at index 0 ("line one"); no addition or
	// deletion is selected, so the hunk must not be emitted.
	patch := GeneratePartialPatch(diff, []LineSelection{{HunkIndex: 0, LineIndex: 0}})
	if patch != "" {
		t.Errorf("expected empty patch for context-only selection, got:\n%s", patch)
	}
}

func TestGeneratePartialPatchEmptySelectionIsNoOp(t *testing.T) {
	diff := ParseDiff(sampleDiff, "foo.txt")
	patch := GeneratePartialPatch(diff, nil)
	if patch != "" {
		t.Errorf("expected empty patch for empty selection, got:\n%s", patch)
	}
}
