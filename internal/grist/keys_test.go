package grist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConvertedKeyPathIsStableAndNamespaced(t *testing.T) {
	s := New(t.TempDir())
	a, err := s.convertedKeyPath("/home/user/.ssh/id_rsa.ppk")
	if err != nil {
		t.Fatalf("convertedKeyPath: %v", err)
	}
	b, err := s.convertedKeyPath("/home/user/.ssh/id_rsa.ppk")
	if err != nil {
		t.Fatalf("convertedKeyPath: %v", err)
	}
	if a != b {
		t.Errorf("convertedKeyPath is not stable: %q vs %q", a, b)
	}
	if filepath.Base(filepath.Dir(a)) != "keys" {
		t.Errorf("convertedKeyPath = %q, want it under a 'keys' directory", a)
	}
}

func TestCheckSSHKeyClassifiesUnknownFile(t *testing.T) {
	s := New(t.TempDir())
	path := filepath.Join(t.TempDir(), "not-a-key")
	if err := os.WriteFile(path, []byte("nonsense"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	info, err := s.CheckSSHKey(path)
	if err != nil {
		t.Fatalf("CheckSSHKey: %v", err)
	}
	if info.NeedsConversion {
		t.Errorf("unrecognised format should not need conversion")
	}
}

func TestResolveSSHKeyEmptyPathWithNoIdentityReturnsNilEnv(t *testing.T) {
	s := New(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	env, err := s.resolveSSHKey("")
	if err != nil {
		t.Fatalf("resolveSSHKey: %v", err)
	}
	if env != nil {
		t.Errorf("expected nil env overlay, got %v", env)
	}
}

func TestSSHKeyLockedErrorFormatsWithSentinelPrefix(t *testing.T) {
	err := &SSHKeyLockedError{Path: "/home/user/.ssh/id_rsa"}
	want := "SSH_KEY_LOCKED:/home/user/.ssh/id_rsa"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
