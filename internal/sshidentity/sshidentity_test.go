package sshidentity

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}
	got := expandHome("~/.ssh/id_ed25519")
	want := filepath.Join(home, ".ssh/id_ed25519")
	if got != want {
		t.Errorf("expandHome = %q, want %q", got, want)
	}
}

func TestExpandHomeLeavesAbsolutePathAlone(t *testing.T) {
	if got := expandHome("/etc/ssh/id_rsa"); got != "/etc/ssh/id_rsa" {
		t.Errorf("expandHome modified an absolute path: %q", got)
	}
}

func TestBuildGitSSHCommandContainsRequiredFlags(t *testing.T) {
	cmd := BuildGitSSHCommand("/home/user/.ssh/id_ed25519")
	for _, want := range []string{
		"ssh -i",
		"IdentitiesOnly=yes",
		"BatchMode=yes",
		"StrictHostKeyChecking=accept-new",
		"/home/user/.ssh/id_ed25519",
	} {
		if !strings.Contains(cmd, want) {
			t.Errorf("BuildGitSSHCommand = %q, missing %q", cmd, want)
		}
	}
}

func TestResolveIdentityFileMissingConfigIsNotAnError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	identity, err := ResolveIdentityFile("example.com")
	if err != nil {
		t.Fatalf("ResolveIdentityFile: %v", err)
	}
	if identity != "" {
		t.Errorf("expected empty identity for missing config, got %q", identity)
	}
}
