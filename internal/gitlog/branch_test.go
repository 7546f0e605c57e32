package gitlog

import "testing"

func TestParseBranches(t *testing.T) {
	output := "main\x00abc1234\x00origin/main\x00\x002024-01-01 00:00:00 +0000\x00*\n" +
		"remotes/origin/feature\x00def5678\x00\x00[ahead 2, behind 1]\x002024-01-02 00:00:00 +0000\x00\n"

	branches := parseBranches(output)
	if len(branches) != 2 {
		t.Fatalf("got %d branches, want 2", len(branches))
	}

	main := branches[0]
	if main.Name != "main" || !main.IsCurrent || main.IsRemote {
		t.Errorf("main branch = %+v", main)
	}

	feature := branches[1]
	if feature.Name != "feature" || feature.RemoteName != "origin" || !feature.IsRemote {
		t.Errorf("feature branch = %+v", feature)
	}
	if feature.Ahead != 2 || feature.Behind != 1 {
		t.Errorf("ahead/behind = %d/%d, want 2/1", feature.Ahead, feature.Behind)
	}
}

func TestParseTrackInfoMissingDefaultsZero(t *testing.T) {
	ahead, behind := parseTrackInfo("")
	if ahead != 0 || behind != 0 {
		t.Errorf("parseTrackInfo(\"\") = (%d,%d), want (0,0)", ahead, behind)
	}
}
