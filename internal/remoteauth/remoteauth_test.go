package remoteauth

import (
	"path/filepath"
	"testing"
)

func TestConfigPathIsStableHash(t *testing.T) {
	a := configPath("/data", "/home/user/repo")
	b := configPath("/data", "/home/user/repo")
	if a != b {
		t.Fatalf("configPath is not stable: %q != %q", a, b)
	}
	if filepath.Base(a) != "remotes.json" {
		t.Errorf("configPath = %q, want basename remotes.json", a)
	}
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	cfg := Load(dir, "/nonexistent/repo")
	if len(cfg.Remotes) != 0 {
		t.Errorf("got %d remotes for a missing store, want 0", len(cfg.Remotes))
	}
}

func TestSetLoadRemoveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repoPath := "/home/user/repo"

	if err := SetRemoteAuth(dir, repoPath, "origin", Config{AuthType: AuthSshKey, SshKeyPath: "/home/user/.ssh/id_ed25519"}); err != nil {
		t.Fatalf("SetRemoteAuth: %v", err)
	}

	got := GetRemoteAuth(dir, repoPath, "origin")
	if got.AuthType != AuthSshKey || got.SshKeyPath != "/home/user/.ssh/id_ed25519" {
		t.Errorf("GetRemoteAuth = %+v", got)
	}

	if err := RemoveRemoteAuth(dir, repoPath, "origin"); err != nil {
		t.Fatalf("RemoveRemoteAuth: %v", err)
	}

	got = GetRemoteAuth(dir, repoPath, "origin")
	if got.AuthType != AuthNone {
		t.Errorf("after removal GetRemoteAuth = %+v, want AuthNone", got)
	}
}
