package ppk

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Decrypt derives the AES key and MAC key per the file's version, decrypts
// the private blob (a no-op copy when unencrypted), and verifies the MAC.
// A MAC mismatch is reported as InvalidPassphraseError regardless of
// whether the real cause is a wrong passphrase or corrupted file, matching
// the source's own inability to distinguish the two.
func Decrypt(file *File, passphrase []byte) ([]byte, error) {
	aesKey, iv, macKey, err := deriveKeys(file, passphrase)
	if err != nil {
		return nil, err
	}

	var decrypted []byte
	if file.IsEncrypted() {
		decrypted, err = aesCBCDecrypt(aesKey, iv, file.PrivateBlob)
		if err != nil {
			return nil, err
		}
	} else {
		decrypted = append([]byte(nil), file.PrivateBlob...)
	}

	if !verifyMAC(file, macKey, decrypted) {
		return nil, &InvalidPassphraseError{}
	}

	return decrypted, nil
}

// deriveKeys returns (aesKey, iv, macKey). For v2, iv is always 16 zero
// bytes; for an unencrypted file the AES key/iv are unused by the caller.
func deriveKeys(file *File, passphrase []byte) (aesKey, iv, macKey []byte, err error) {
	switch file.Version {
	case 2:
		aesKey = sha1Concat(passphrase)
		iv = make([]byte, 16)
		macKey = sha1Sum(append([]byte("putty-private-key-file-mac-key"), passphrase...))
		return aesKey, iv, macKey, nil
	case 3:
		if !file.IsEncrypted() {
			return nil, nil, make([]byte, 32), nil
		}
		variant := argon2Variant(file.Argon2Variant)
		if variant == argon2Unknown {
			return nil, nil, nil, &ParseError{Reason: "unknown Argon2 variant: " + file.Argon2Variant}
		}
		if variant == argon2VariantD {
			return nil, nil, nil, &UnsupportedKDFError{Variant: file.Argon2Variant}
		}
		material := runArgon2(variant, passphrase, file.Argon2Salt, file.Argon2Passes, file.Argon2MemoryKiB, file.Argon2Parallelism)
		return material[0:32], material[32:48], material[48:80], nil
	default:
		return nil, nil, nil, &ParseError{Reason: fmt.Sprintf("unsupported PPK version %d", file.Version)}
	}
}

const (
	argon2Unknown = iota
	argon2VariantID
	argon2VariantI
	argon2VariantD
)

func argon2Variant(name string) int {
	switch name {
	case "Argon2id":
		return argon2VariantID
	case "Argon2i":
		return argon2VariantI
	case "Argon2d":
		return argon2VariantD
	default:
		return argon2Unknown
	}
}

// runArgon2 produces 80 bytes of key material: 32-byte AES key, 16-byte
// IV, 32-byte MAC key, using Argon2 version 0x13 (the only version PPK v3
// specifies). Callers must reject argon2VariantD before calling this, since
// golang.org/x/crypto/argon2 exposes no Argon2d implementation.
func runArgon2(variant int, password, salt []byte, passes, memoryKiB, parallelism uint32) []byte {
	const outLen = 80
	switch variant {
	case argon2VariantID:
		return argon2.IDKey(password, salt, passes, memoryKiB, uint8(parallelism), outLen)
	default:
		return argon2.Key(password, salt, passes, memoryKiB, uint8(parallelism), outLen)
	}
}

func sha1Sum(b []byte) []byte {
	h := sha1.Sum(b)
	return h[:]
}

// sha1Concat implements the v2 AES key derivation: SHA1(0x00000000 ||
// passphrase) || SHA1(0x00000001 || passphrase), truncated to 32 bytes.
func sha1Concat(passphrase []byte) []byte {
	first := sha1Sum(append([]byte{0, 0, 0, 0}, passphrase...))
	second := sha1Sum(append([]byte{0, 0, 0, 1}, passphrase...))
	return append(append([]byte{}, first...), second...)[:32]
}

func aesCBCDecrypt(key, iv, ciphertext []byte) ([]byte, error) {
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, &ParseError{Reason: "private blob length is not a multiple of the AES block size"}
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	return out, nil
}

// verifyMAC recomputes the PPK MAC over the fixed field layout and
// compares in constant time.
func verifyMAC(file *File, macKey, decryptedPrivate []byte) bool {
	message := macMessage(file, decryptedPrivate)

	var computed []byte
	if file.Version == 2 {
		mac := hmac.New(sha1.New, macKey)
		mac.Write(message)
		computed = mac.Sum(nil)
	} else {
		mac := hmac.New(sha256.New, macKey)
		mac.Write(message)
		computed = mac.Sum(nil)
	}

	return hmac.Equal(computed, file.PrivateMAC)
}

func macMessage(file *File, decryptedPrivate []byte) []byte {
	var buf []byte
	buf = append(buf, sshString([]byte(file.Algorithm))...)
	buf = append(buf, sshString([]byte(file.Encryption))...)
	buf = append(buf, sshString([]byte(file.Comment))...)
	buf = append(buf, sshString(file.PublicBlob)...)
	buf = append(buf, sshString(decryptedPrivate)...)
	return buf
}
