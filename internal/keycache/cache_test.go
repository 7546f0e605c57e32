package keycache

import (
	"bytes"
	"testing"
)

func TestSealUnsealRoundTrip(t *testing.T) {
	passphrase := []byte("correct horse battery staple")
	sealed, err := seal(passphrase)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	opened, err := unseal(sealed)
	if err != nil {
		t.Fatalf("unseal: %v", err)
	}
	if !bytes.Equal(opened, passphrase) {
		t.Errorf("unseal = %q, want %q", opened, passphrase)
	}
}

func TestUnsealRejectsTamperedCiphertext(t *testing.T) {
	sealed, err := seal([]byte("secret"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	sealed[len(sealed)-1] ^= 0xff
	if _, err := unseal(sealed); err == nil {
		t.Fatalf("expected error for tampered ciphertext")
	}
}

func TestLockDiscardsEntry(t *testing.T) {
	const keyPath = "/tmp/does-not-exist-test-key"
	sealed, err := seal([]byte("pw"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	mu.Lock()
	entries[keyPath] = &entry{sealedPassphrase: sealed}
	mu.Unlock()

	if !IsUnlocked(keyPath) {
		t.Fatalf("expected key to be unlocked after manual insert")
	}

	Lock(keyPath)

	if IsUnlocked(keyPath) {
		t.Errorf("expected key to be locked after Lock")
	}
}

func TestNeedsUnlockMissingFile(t *testing.T) {
	if _, err := NeedsUnlock("/tmp/grist-keycache-test-missing-file"); err == nil {
		t.Fatalf("expected error reading a missing key file")
	}
}

func TestMaterialiseDecryptedLockedKeyErrorMessage(t *testing.T) {
	const keyPath = "/tmp/does-not-exist-locked-test-key"

	mu.Lock()
	delete(entries, keyPath)
	mu.Unlock()

	_, err := MaterialiseDecrypted(keyPath)
	if err == nil {
		t.Fatalf("expected error for a locked key")
	}
	if err.Error() != "Key is locked" {
		t.Errorf("Error() = %q, want %q", err.Error(), "Key is locked")
	}
}
