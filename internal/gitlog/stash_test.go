package gitlog

import "testing"

func TestParseStashes(t *testing.T) {
	output := "stash@{0}\x00WIP on main: abc1234 fix bug\x00WIP on main: abc1234 fix bug\x002024-01-01 00:00:00 +0000---END---"
	stashes := parseStashes(output)
	if len(stashes) != 1 {
		t.Fatalf("got %d stashes, want 1", len(stashes))
	}
	s := stashes[0]
	if s.Index != 0 {
		t.Errorf("Index = %d, want 0", s.Index)
	}
	if s.Branch != "main" {
		t.Errorf("Branch = %q, want main", s.Branch)
	}
}

func TestParseStashBranchOnPrefix(t *testing.T) {
	branch := parseStashBranch("On develop: WIP")
	if branch != "develop" {
		t.Errorf("parseStashBranch = %q, want develop", branch)
	}
}

func TestParseStashIndex(t *testing.T) {
	if idx := parseStashIndex("stash@{3}"); idx != 3 {
		t.Errorf("parseStashIndex = %d, want 3", idx)
	}
}
