package keycache

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/EvSecDev/grist/internal/logging"
	"github.com/EvSecDev/grist/internal/ppk"
)

// processKey seals every cached passphrase for the life of this process. It
// never leaves memory and is never derived from anything the user supplies,
// so holding a decrypted passphrase in the cache is no weaker than holding
// it in a local variable; the seal only defends against an adjacent bug
// that dumps process memory structures (e.g. a panic trace) in a way that
// would otherwise print the passphrase bytes verbatim.
var processKey = func() [32]byte {
	var key [32]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		panic("keycache: failed to generate process key: " + err.Error())
	}
	return key
}()

var (
	mu      sync.RWMutex
	entries = map[string]*entry{}
)

// IsUnlocked reports whether keyPath currently has a cached passphrase.
func IsUnlocked(keyPath string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[keyPath]
	return ok
}

// NeedsUnlock reports whether keyPath is passphrase-protected and not
// currently cached. A key that cannot be read or classified returns false
// together with the read or classification error.
func NeedsUnlock(keyPath string) (bool, error) {
	if IsUnlocked(keyPath) {
		return false, nil
	}

	data, err := os.ReadFile(keyPath)
	if err != nil {
		return false, err
	}
	encrypted, err := ppk.IsEncrypted(data)
	if err != nil {
		return false, err
	}
	return encrypted, nil
}

// Unlock verifies passphrase against keyPath and, on success, caches it in
// sealed form for the remainder of the process. Verification is performed
// without materialising any decrypted key material to disk.
func Unlock(keyPath string, passphrase []byte) error {
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return err
	}

	switch ppk.DetectFormat(data) {
	case ppk.FormatPPK:
		file, err := ppk.Parse(data)
		if err != nil {
			return err
		}
		if _, err := ppk.Decrypt(file, passphrase); err != nil {
			return err
		}
	case ppk.FormatOpenSSH:
		if err := ppk.VerifyOpenSSHPassphrase(data, passphrase); err != nil {
			return err
		}
	default:
		return fmt.Errorf("keycache: unsupported key format for %s", keyPath)
	}

	sealed, err := seal(passphrase)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	entries[keyPath] = &entry{sealedPassphrase: sealed, unlockedAt: time.Now()}

	logging.Printf(4, "      Unlocked and cached passphrase for key '%s'\n", keyPath)
	return nil
}

// Lock discards the cached passphrase and any materialised plaintext copy
// for keyPath.
func Lock(keyPath string) {
	mu.Lock()
	defer mu.Unlock()
	lockLocked(keyPath)
}

// LockAll discards every cached passphrase and materialised plaintext copy.
func LockAll() {
	mu.Lock()
	defer mu.Unlock()
	for keyPath := range entries {
		lockLocked(keyPath)
	}
}

// lockLocked removes keyPath's cache entry; callers must hold mu.
func lockLocked(keyPath string) {
	e, ok := entries[keyPath]
	if !ok {
		return
	}
	if e.materialisedPath != "" {
		_ = os.Remove(e.materialisedPath)
	}
	for i := range e.sealedPassphrase {
		e.sealedPassphrase[i] = 0
	}
	delete(entries, keyPath)
}

// StatusOf reports the cache state for keyPath.
func StatusOf(keyPath string) Status {
	mu.RLock()
	e, unlocked := entries[keyPath]
	mu.RUnlock()

	needsUnlock, _ := NeedsUnlock(keyPath)
	return Status{
		KeyPath:      keyPath,
		Unlocked:     unlocked,
		NeedsUnlock:  needsUnlock && !unlocked,
		Materialised: unlocked && e != nil && e.materialisedPath != "",
	}
}

// MaterialiseDecrypted writes an unencrypted openssh-key-v1 copy of keyPath
// to a process-scoped temp file (reusing a previous copy if one still
// exists) and returns its path. keyPath must already be unlocked.
func MaterialiseDecrypted(keyPath string) (string, error) {
	mu.Lock()
	defer mu.Unlock()

	e, ok := entries[keyPath]
	if !ok {
		return "", errors.New("Key is locked")
	}
	if e.materialisedPath != "" {
		if _, err := os.Stat(e.materialisedPath); err == nil {
			return e.materialisedPath, nil
		}
	}

	passphrase, err := unseal(e.sealedPassphrase)
	if err != nil {
		return "", err
	}
	defer zero(passphrase)

	data, err := os.ReadFile(keyPath)
	if err != nil {
		return "", err
	}

	var plaintext []byte
	switch ppk.DetectFormat(data) {
	case ppk.FormatPPK:
		file, err := ppk.Parse(data)
		if err != nil {
			return "", err
		}
		decrypted, err := ppk.Decrypt(file, passphrase)
		if err != nil {
			return "", err
		}
		pem, err := ppk.ConvertToOpenSSH(file, decrypted, nil)
		if err != nil {
			return "", err
		}
		plaintext = pem
	case ppk.FormatOpenSSH:
		pem, err := ppk.DecryptOpenSSHKeyToPlaintext(data, passphrase)
		if err != nil {
			return "", err
		}
		plaintext = pem
	default:
		return "", fmt.Errorf("keycache: unsupported key format for %s", keyPath)
	}

	path := tempKeyPath()
	if err := os.WriteFile(path, plaintext, 0o600); err != nil {
		return "", err
	}

	e.materialisedPath = path
	logging.Printf(4, "      Materialised decrypted copy of '%s' at '%s'\n", keyPath, path)
	return path, nil
}

func tempKeyPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("grist_key_%d_%d", os.Getpid(), time.Now().UnixNano()))
}

// Cleanup removes every materialised temp key belonging to this process,
// for use as a shutdown hook. Orphaned files from a process that crashed
// before cleanup ran are left for CleanupOrphaned.
func Cleanup() {
	mu.Lock()
	defer mu.Unlock()
	for keyPath := range entries {
		lockLocked(keyPath)
	}
}

// CleanupOrphaned removes materialised temp key files left behind by a
// prior process with the same pid (pids recycle, so this is opportunistic
// best-effort, matching the equivalent cleanup sweep in the key material
// this package is modelled on).
func CleanupOrphaned() {
	prefix := fmt.Sprintf("grist_key_%d_", os.Getpid())
	dir := os.TempDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		if len(de.Name()) >= len(prefix) && de.Name()[:len(prefix)] == prefix {
			_ = os.Remove(filepath.Join(dir, de.Name()))
		}
	}
}

func seal(passphrase []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(processKey[:])
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	sealed := aead.Seal(nonce, nonce, passphrase, nil)
	return sealed, nil
}

func unseal(sealed []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(processKey[:])
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, fmt.Errorf("keycache: corrupt cache entry")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, nil)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
