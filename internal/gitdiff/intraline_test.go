package gitdiff

import "testing"

const pairedReplaceDiff = `diff --git a/foo.txt b/foo.txt
index 1234567..89abcde 100644
--- a/foo.txt
+++ b/foo.txt
@@ -1,1 +1,1 @@
-hello world
+hello there
`

func TestAnnotateIntralineMarksSharedAndChangedSpans(t *testing.T) {
	diff := ParseDiff(pairedReplaceDiff, "foo.txt")
	if len(diff.Hunks) != 1 || len(diff.Hunks[0].Lines) != 2 {
		t.Fatalf("unexpected diff shape: %+v", diff)
	}

	oldLine := diff.Hunks[0].Lines[0]
	newLine := diff.Hunks[0].Lines[1]

	if len(oldLine.Segments) == 0 || len(newLine.Segments) == 0 {
		t.Fatalf("expected both paired lines to carry segments, got old=%v new=%v", oldLine.Segments, newLine.Segments)
	}

	var oldText, newText string
	for _, seg := range oldLine.Segments {
		oldText += seg.Text
	}
	for _, seg := range newLine.Segments {
		newText += seg.Text
	}
	if oldText != oldLine.Content {
		t.Errorf("old segments reassemble to %q, want %q", oldText, oldLine.Content)
	}
	if newText != newLine.Content {
		t.Errorf("new segments reassemble to %q, want %q", newText, newLine.Content)
	}
}

func TestAnnotateIntralineSkipsUnequalRuns(t *testing.T) {
	diff := ParseDiff(sampleDiff, "foo.txt")
	hunk := diff.Hunks[0]
	for _, line := range hunk.Lines {
		if line.Kind == Deletion || line.Kind == Addition {
			if len(line.Segments) != 0 {
				t.Errorf("line %q got segments %v, want none for an unequal-length run", line.Content, line.Segments)
			}
		}
	}
}
