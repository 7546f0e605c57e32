package gitstatus

import "testing"

func TestParseAheadBehind(t *testing.T) {
	cases := []struct {
		in           string
		ahead, behind uint32
	}{
		{"+0 -0", 0, 0},
		{"+3 -1", 3, 1},
		{"+0 -5", 0, 5},
	}
	for _, c := range cases {
		ahead, behind := parseAheadBehind(c.in)
		if ahead != c.ahead || behind != c.behind {
			t.Errorf("parseAheadBehind(%q) = (%d,%d), want (%d,%d)", c.in, ahead, behind, c.ahead, c.behind)
		}
	}
}

func TestParseChanged(t *testing.T) {
	token := "1 M. N... 100644 100644 100644 0000000000000000000000000000000000000000 0000000000000000000000000000000000000000 a.txt"
	entry, ok := parseChanged(token)
	if !ok {
		t.Fatalf("parseChanged returned ok=false")
	}
	if entry.Path != "a.txt" {
		t.Errorf("Path = %q, want a.txt", entry.Path)
	}
	if entry.IndexStatus != Modified {
		t.Errorf("IndexStatus = %q, want Modified", entry.IndexStatus)
	}
	if entry.WorktreeStatus != Unmodified {
		t.Errorf("WorktreeStatus = %q, want Unmodified", entry.WorktreeStatus)
	}
}

func TestParseRenameOrCopy(t *testing.T) {
	token := "2 R. N... 100644 100644 100644 0000000000000000000000000000000000000000 0000000000000000000000000000000000000000 R100 new.txt"
	entry, ok := parseRenameOrCopy(token, "old.txt")
	if !ok {
		t.Fatalf("parseRenameOrCopy returned ok=false")
	}
	if entry.Path != "new.txt" || entry.OriginalPath != "old.txt" {
		t.Errorf("Path/OriginalPath = %q/%q, want new.txt/old.txt", entry.Path, entry.OriginalPath)
	}
	if entry.IndexStatus != Renamed {
		t.Errorf("IndexStatus = %q, want Renamed", entry.IndexStatus)
	}
}

func TestAppendEntrySplitsStagedAndUnstaged(t *testing.T) {
	var status Status
	appendEntry(&status, Entry{Path: "both.txt", IndexStatus: Modified, WorktreeStatus: Modified})
	if len(status.Staged) != 1 || len(status.Unstaged) != 1 {
		t.Fatalf("got %d staged, %d unstaged, want 1 and 1", len(status.Staged), len(status.Unstaged))
	}
	if status.Staged[0].WorktreeStatus != Unmodified {
		t.Errorf("staged entry WorktreeStatus = %q, want Unmodified", status.Staged[0].WorktreeStatus)
	}
	if status.Unstaged[0].IndexStatus != Unmodified {
		t.Errorf("unstaged entry IndexStatus = %q, want Unmodified", status.Unstaged[0].IndexStatus)
	}
}

func TestStatusFromColumn(t *testing.T) {
	cases := map[byte]FileStatus{
		'M': Modified, 'T': TypeChanged, 'A': Added, 'D': Deleted,
		'R': Renamed, 'C': Copied, 'U': Conflicted, '?': Untracked,
		'!': Ignored, '.': Unmodified,
	}
	for col, want := range cases {
		if got := statusFromColumn(col); got != want {
			t.Errorf("statusFromColumn(%q) = %q, want %q", col, got, want)
		}
	}
}
