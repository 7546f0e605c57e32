package ppk

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"golang.org/x/crypto/ssh"
)

// buildEd25519File assembles the File/decryptedPrivate pair ConvertToOpenSSH
// expects for an ed25519 key, from a freshly generated key pair.
func buildEd25519File(t *testing.T) (*File, []byte, ed25519.PublicKey) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("ed25519.GenerateKey: %v", err)
	}
	seed := priv.Seed()

	var pubBlob sshWriter
	pubBlob.writeString([]byte("ssh-ed25519"))
	pubBlob.writeString(pub)

	var privSection sshWriter
	privSection.writeString(seed)

	file := &File{
		Algorithm:  "ssh-ed25519",
		Comment:    "interop-test",
		PublicBlob: pubBlob.bytes(),
	}
	return file, privSection.bytes(), pub
}

// TestConvertToOpenSSHEncryptedKeyParsesWithRealSSHLibrary encrypts a
// freshly built ed25519 key with ConvertToOpenSSH and decrypts it with
// golang.org/x/crypto/ssh's own bcrypt-pbkdf implementation. A wrong
// bcryptPBKDF derivation produces key/IV bytes the real library's checkint
// comparison rejects, so this only passes when bcryptPBKDF is byte-for-byte
// compatible with OpenSSH's own KDF.
func TestConvertToOpenSSHEncryptedKeyParsesWithRealSSHLibrary(t *testing.T) {
	file, privSection, pub := buildEd25519File(t)
	passphrase := []byte("correct horse battery staple")

	pemBytes, err := ConvertToOpenSSH(file, privSection, passphrase)
	if err != nil {
		t.Fatalf("ConvertToOpenSSH: %v", err)
	}

	signer, err := ssh.ParsePrivateKeyWithPassphrase(pemBytes, passphrase)
	if err != nil {
		t.Fatalf("ssh.ParsePrivateKeyWithPassphrase: %v", err)
	}

	want, err := ssh.NewPublicKey(pub)
	if err != nil {
		t.Fatalf("ssh.NewPublicKey: %v", err)
	}
	if !bytes.Equal(signer.PublicKey().Marshal(), want.Marshal()) {
		t.Errorf("decrypted key's public key does not match the original")
	}
}

// TestConvertToOpenSSHEncryptedKeyRejectsWrongPassphraseViaRealSSHLibrary
// confirms the real library's own checkint validation rejects a wrong
// passphrase against our emitted ciphertext, rather than the two
// implementations happening to agree only on the correct-passphrase path.
func TestConvertToOpenSSHEncryptedKeyRejectsWrongPassphraseViaRealSSHLibrary(t *testing.T) {
	file, privSection, _ := buildEd25519File(t)

	pemBytes, err := ConvertToOpenSSH(file, privSection, []byte("correct horse battery staple"))
	if err != nil {
		t.Fatalf("ConvertToOpenSSH: %v", err)
	}

	if _, err := ssh.ParsePrivateKeyWithPassphrase(pemBytes, []byte("wrong passphrase")); err == nil {
		t.Fatalf("expected ssh.ParsePrivateKeyWithPassphrase to reject a wrong passphrase")
	}
}

// TestVerifyOpenSSHPassphraseAcceptsConvertedEncryptedKey encrypts a key
// with ConvertToOpenSSH, the same path whose ciphertext the interop tests
// above check against golang.org/x/crypto/ssh, and confirms
// VerifyOpenSSHPassphrase accepts the correct passphrase and rejects a
// wrong one.
func TestVerifyOpenSSHPassphraseAcceptsConvertedEncryptedKey(t *testing.T) {
	file, privSection, _ := buildEd25519File(t)
	passphrase := []byte("another passphrase entirely")

	pemBytes, err := ConvertToOpenSSH(file, privSection, passphrase)
	if err != nil {
		t.Fatalf("ConvertToOpenSSH: %v", err)
	}

	if err := VerifyOpenSSHPassphrase(pemBytes, passphrase); err != nil {
		t.Fatalf("VerifyOpenSSHPassphrase rejected the correct passphrase: %v", err)
	}
	if err := VerifyOpenSSHPassphrase(pemBytes, []byte("not it")); err == nil {
		t.Fatalf("VerifyOpenSSHPassphrase accepted a wrong passphrase")
	}
}
