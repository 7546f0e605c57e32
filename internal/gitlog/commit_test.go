package gitlog

import "testing"

func TestParseLog(t *testing.T) {
	entry := "deadbeef\x00dead\x00Alice\x00alice@example.com\x002024-01-01T00:00:00+00:00\x001704067200\x00" +
		"Bob\x00bob@example.com\x002024-01-02T00:00:00+00:00\x001704153600\x00" +
		"subject line\x00body text\x00parent1 parent2\x00HEAD -> main, tag: v1.0---END---"

	commits := parseLog(entry)
	if len(commits) != 1 {
		t.Fatalf("got %d commits, want 1", len(commits))
	}
	c := commits[0]
	if c.Hash != "deadbeef" || c.ShortHash != "dead" {
		t.Errorf("hash/shortHash = %q/%q", c.Hash, c.ShortHash)
	}
	if c.AuthorName != "Alice" || c.CommitterName != "Bob" {
		t.Errorf("authorName/committerName = %q/%q, want Alice/Bob", c.AuthorName, c.CommitterName)
	}
	if c.AuthorTimestamp != 1704067200 || c.CommitterTimestamp != 1704153600 {
		t.Errorf("timestamps = %d/%d", c.AuthorTimestamp, c.CommitterTimestamp)
	}
	if len(c.ParentHashes) != 2 || c.ParentHashes[0] != "parent1" {
		t.Errorf("parentHashes = %v", c.ParentHashes)
	}
	if len(c.Refs) != 2 || c.Refs[0] != "HEAD -> main" {
		t.Errorf("refs = %v", c.Refs)
	}
}

func TestParseLogSkipsShortEntries(t *testing.T) {
	commits := parseLog("a\x00b---END---")
	if len(commits) != 0 {
		t.Errorf("got %d commits from a malformed entry, want 0", len(commits))
	}
}
