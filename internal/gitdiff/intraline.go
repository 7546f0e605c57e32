package gitdiff

import "github.com/sergi/go-diff/diffmatchpatch"

var dmp = diffmatchpatch.New()

// annotateIntraline finds deletion/addition runs of equal length within a
// hunk (the common "line replaced" shape) and fills in each paired line's
// Segments with a character-level diff, so the UI can highlight the exact
// edit instead of shading the whole line.
func annotateIntraline(hunk *Hunk) {
	lines := hunk.Lines
	i := 0
	for i < len(lines) {
		if lines[i].Kind != Deletion {
			i++
			continue
		}
		delStart := i
		for i < len(lines) && lines[i].Kind == Deletion {
			i++
		}
		delCount := i - delStart

		addStart := i
		for i < len(lines) && lines[i].Kind == Addition {
			i++
		}
		addCount := i - addStart

		if delCount != addCount {
			continue
		}
		for k := 0; k < delCount; k++ {
			annotatePair(&lines[delStart+k], &lines[addStart+k])
		}
	}
}

func annotatePair(oldLine, newLine *Line) {
	diffs := dmp.DiffMain(oldLine.Content, newLine.Content, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldLine.Segments = append(oldLine.Segments, Segment{Kind: Context, Text: d.Text})
			newLine.Segments = append(newLine.Segments, Segment{Kind: Context, Text: d.Text})
		case diffmatchpatch.DiffDelete:
			oldLine.Segments = append(oldLine.Segments, Segment{Kind: Deletion, Text: d.Text})
		case diffmatchpatch.DiffInsert:
			newLine.Segments = append(newLine.Segments, Segment{Kind: Addition, Text: d.Text})
		}
	}
}
