package grist

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/EvSecDev/grist/internal/keycache"
	"github.com/EvSecDev/grist/internal/logging"
	"github.com/EvSecDev/grist/internal/ppk"
	"github.com/EvSecDev/grist/internal/sshidentity"
)

// KeyInfo answers check_ssh_key: what a file is, and whether it needs
// conversion before git's ssh transport can use it directly.
type KeyInfo struct {
	Path             string     `json:"path"`
	Format           ppk.Format `json:"format"`
	Encrypted        bool       `json:"encrypted"`
	NeedsConversion  bool       `json:"needsConversion"`
	PPKVersion       int        `json:"ppkVersion,omitempty"`
}

// CheckSSHKey classifies path and reports whether it must be converted to
// openssh-key-v1 before use.
func (s *Service) CheckSSHKey(path string) (KeyInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return KeyInfo{}, err
	}

	format := ppk.DetectFormat(data)
	info := KeyInfo{Path: path, Format: format, NeedsConversion: format == ppk.FormatPPK}

	if format != ppk.FormatUnknown {
		encrypted, err := ppk.IsEncrypted(data)
		if err != nil {
			return KeyInfo{}, err
		}
		info.Encrypted = encrypted
	}

	if format == ppk.FormatPPK {
		if file, parseErr := ppk.Parse(data); parseErr == nil {
			info.PPKVersion = file.Version
		}
	}

	return info, nil
}

// ConvertSSHKey converts a PPK key at sourcePath to openssh-key-v1, writing
// the result under <app_data>/keys/ and returning its path. passphrase
// unlocks an encrypted source key; the output is always unencrypted,
// since the converted copy is meant for direct non-interactive use by
// git's ssh transport (the original passphrase continues to gate the
// source PPK file itself).
func (s *Service) ConvertSSHKey(sourcePath string, passphrase []byte) (string, error) {
	pemBytes, err := ppk.ConvertFile(sourcePath, passphrase, nil)
	if err != nil {
		return "", err
	}

	destPath, err := s.convertedKeyPath(sourcePath)
	if err != nil {
		return "", err
	}
	if err := ppk.WriteOpenSSHKey(destPath, pemBytes); err != nil {
		return "", err
	}

	logging.Printf(logging.VerbosityProgress, "    Converted PPK key '%s' to '%s'\n", sourcePath, destPath)
	return destPath, nil
}

// GetConvertedKeyPath reports the converted-key path for sourcePath if one
// already exists on disk, or "" if not.
func (s *Service) GetConvertedKeyPath(sourcePath string) (string, error) {
	destPath, err := s.convertedKeyPath(sourcePath)
	if err != nil {
		return "", err
	}
	if _, statErr := os.Stat(destPath); statErr != nil {
		return "", nil
	}
	return destPath, nil
}

// convertedKeyPath is <app_data>/keys/<stem>_<first8(md5(path))>.
func (s *Service) convertedKeyPath(sourcePath string) (string, error) {
	sum := md5.Sum([]byte(sourcePath))
	suffix := hex.EncodeToString(sum[:])[:8]
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))

	dir := filepath.Join(s.AppDataDir, "keys")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s", stem, suffix)), nil
}

// SSHKeyNeedsUnlock reports whether path is passphrase-protected and not
// currently cached.
func (s *Service) SSHKeyNeedsUnlock(path string) (bool, error) {
	return keycache.NeedsUnlock(path)
}

// SSHKeyIsUnlocked reports whether path currently has a cached passphrase.
func (s *Service) SSHKeyIsUnlocked(path string) bool {
	return keycache.IsUnlocked(path)
}

// SSHKeyUnlock verifies passphrase against path and caches it on success.
func (s *Service) SSHKeyUnlock(path string, passphrase []byte) error {
	return keycache.Unlock(path, passphrase)
}

// SSHKeyLock discards the cached passphrase (and materialised plaintext
// copy, if any) for path.
func (s *Service) SSHKeyLock(path string) {
	keycache.Lock(path)
}

// SSHKeysLockAll discards every cached passphrase.
func (s *Service) SSHKeysLockAll() {
	keycache.LockAll()
}

// resolveSSHKey builds the environment overlay for an authenticated git
// invocation. An empty keyPath falls back to internal/sshidentity's
// ~/.ssh/config lookup for the current user's default identity; if that
// also comes up empty, the command runs with no SSH override and git
// falls back to its own default transport. A keyPath that still needs
// unlocking is reported as *SSHKeyLockedError so the caller can surface
// the sentinel "SSH_KEY_LOCKED:<path>" string verbatim.
func (s *Service) resolveSSHKey(keyPath string) (map[string]string, error) {
	if keyPath == "" {
		identity, err := sshidentity.ResolveIdentityFile("*")
		if err != nil {
			return nil, err
		}
		if identity == "" {
			return nil, nil
		}
		keyPath = identity
	}

	needsUnlock, err := keycache.NeedsUnlock(keyPath)
	if err != nil {
		return nil, err
	}
	if needsUnlock {
		return nil, &SSHKeyLockedError{Path: keyPath}
	}

	decryptedPath := keyPath
	if keycache.IsUnlocked(keyPath) {
		decryptedPath, err = keycache.MaterialiseDecrypted(keyPath)
		if err != nil {
			return nil, &DecryptionFailedError{Message: err.Error()}
		}
	}

	return map[string]string{
		"GIT_SSH_COMMAND": sshidentity.BuildGitSSHCommand(decryptedPath),
	}, nil
}
