package gitlog

import "testing"

func TestParseTagsAnnotated(t *testing.T) {
	output := "v1.0\x00abc123full\x00abc123\x00Alice\x002024-01-01T00:00:00+00:00\x00release\x00def456\n"
	tags := parseTags(output)
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(tags))
	}
	if !tags[0].IsAnnotated {
		t.Errorf("IsAnnotated = false, want true")
	}
}

func TestParseTagsLightweight(t *testing.T) {
	output := "v1.0\x00abc123full\x00abc123\x00\x00\x00\x00\n"
	tags := parseTags(output)
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(tags))
	}
	if tags[0].IsAnnotated {
		t.Errorf("IsAnnotated = true, want false")
	}
}
