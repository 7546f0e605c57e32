package ppk

import (
	"crypto/hmac"
	"crypto/sha1"
	"testing"
)

func TestSha1ConcatIsDeterministicAndSized(t *testing.T) {
	key := sha1Concat([]byte("hunter2"))
	if len(key) != 32 {
		t.Fatalf("got %d bytes, want 32", len(key))
	}
	if string(key) != string(sha1Concat([]byte("hunter2"))) {
		t.Errorf("sha1Concat is not deterministic")
	}
}

func TestVerifyMACAcceptsMatchingDigestAndRejectsTampering(t *testing.T) {
	file := &File{
		Algorithm:  "ssh-ed25519",
		Encryption: "none",
		Comment:    "test",
		PublicBlob: []byte("pub"),
	}
	decryptedPrivate := []byte("priv")
	macKey := []byte("a-mac-key-of-any-length")

	message := macMessage(file, decryptedPrivate)
	mac := hmac.New(sha1.New, macKey)
	mac.Write(message)
	file.PrivateMAC = mac.Sum(nil)
	file.Version = 2

	if !verifyMAC(file, macKey, decryptedPrivate) {
		t.Fatalf("verifyMAC rejected a correctly computed MAC")
	}

	file.PrivateMAC[0] ^= 0xff
	if verifyMAC(file, macKey, decryptedPrivate) {
		t.Fatalf("verifyMAC accepted a tampered MAC")
	}
}

func TestDecryptUnencryptedFileSkipsAES(t *testing.T) {
	file := &File{
		Version:    2,
		Algorithm:  "ssh-ed25519",
		Encryption: "none",
		Comment:    "test",
		PublicBlob: []byte("pub"),
	}
	decrypted := []byte("private-material")
	file.PrivateBlob = decrypted

	macKey := sha1Sum(append([]byte("putty-private-key-file-mac-key"), []byte("")...))
	mac := hmac.New(sha1.New, macKey)
	mac.Write(macMessage(file, decrypted))
	file.PrivateMAC = mac.Sum(nil)

	got, err := Decrypt(file, nil)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if string(got) != string(decrypted) {
		t.Errorf("Decrypt = %q, want %q", got, decrypted)
	}
}

func TestDecryptWrongPassphraseIsInvalidPassphraseError(t *testing.T) {
	file := &File{
		Version:     2,
		Algorithm:   "ssh-ed25519",
		Encryption:  "none",
		Comment:     "test",
		PublicBlob:  []byte("pub"),
		PrivateBlob: []byte("private-material"),
		PrivateMAC:  []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}

	_, err := Decrypt(file, nil)
	if _, ok := err.(*InvalidPassphraseError); !ok {
		t.Fatalf("got error %v, want *InvalidPassphraseError", err)
	}
}

func TestDeriveKeysRejectsArgon2dWithDistinctError(t *testing.T) {
	file := &File{
		Version:           3,
		Algorithm:         "ssh-ed25519",
		Encryption:        "aes256-ctr",
		Comment:           "test",
		PublicBlob:        []byte("pub"),
		Argon2Variant:     "Argon2d",
		Argon2Salt:        []byte("0123456789abcdef"),
		Argon2Passes:      1,
		Argon2MemoryKiB:   8192,
		Argon2Parallelism: 1,
	}

	_, _, _, err := deriveKeys(file, []byte("hunter2"))
	kdfErr, ok := err.(*UnsupportedKDFError)
	if !ok {
		t.Fatalf("got error %v (%T), want *UnsupportedKDFError", err, err)
	}
	if kdfErr.Variant != "Argon2d" {
		t.Errorf("Variant = %q, want Argon2d", kdfErr.Variant)
	}
	if _, ok := err.(*InvalidPassphraseError); ok {
		t.Fatalf("Argon2d must not be reported as InvalidPassphraseError")
	}
}
