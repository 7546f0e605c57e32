// Package remoteauth persists per-remote SSH authentication preferences
// alongside the app's other per-repository state, keyed by a hash of the
// repository's filesystem path.
package remoteauth

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AuthType selects how a remote authenticates.
type AuthType string

const (
	AuthSshAgent AuthType = "ssh-agent"
	AuthSshKey   AuthType = "ssh-key"
	AuthNone     AuthType = "none"
)

// Config is one remote's authentication preference.
type Config struct {
	AuthType   AuthType `json:"auth_type"`
	SshKeyPath string   `json:"ssh_key_path,omitempty"`
}

// RepositoryConfig is the on-disk shape: a map of remote name to Config.
type RepositoryConfig struct {
	Remotes map[string]Config `json:"remotes"`
}

// configPath returns <appDataDir>/repositories/<md5(repoPath)>/remotes.json.
// md5 here is a path-hashing convenience, not a security boundary; collision
// resistance is irrelevant to picking a stable directory name.
func configPath(appDataDir, repoPath string) string {
	hash := fmt.Sprintf("%x", md5.Sum([]byte(repoPath)))
	return filepath.Join(appDataDir, "repositories", hash, "remotes.json")
}

// Load reads the auth store for a repository, returning an empty store on
// a missing or malformed file.
func Load(appDataDir, repoPath string) RepositoryConfig {
	path := configPath(appDataDir, repoPath)

	data, err := os.ReadFile(path)
	if err != nil {
		return RepositoryConfig{Remotes: map[string]Config{}}
	}

	var cfg RepositoryConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return RepositoryConfig{Remotes: map[string]Config{}}
	}
	if cfg.Remotes == nil {
		cfg.Remotes = map[string]Config{}
	}
	return cfg
}

// Save writes the auth store as a whole-file replacement, creating parent
// directories as needed.
func Save(appDataDir, repoPath string, cfg RepositoryConfig) error {
	path := configPath(appDataDir, repoPath)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// GetRemoteAuth returns the auth config for one remote, or a config with
// AuthType AuthNone if unset.
func GetRemoteAuth(appDataDir, repoPath, remoteName string) Config {
	cfg := Load(appDataDir, repoPath)
	auth, ok := cfg.Remotes[remoteName]
	if !ok {
		return Config{AuthType: AuthNone}
	}
	return auth
}

// SetRemoteAuth upserts the auth config for one remote.
func SetRemoteAuth(appDataDir, repoPath, remoteName string, auth Config) error {
	cfg := Load(appDataDir, repoPath)
	cfg.Remotes[remoteName] = auth
	return Save(appDataDir, repoPath, cfg)
}

// RemoveRemoteAuth deletes the auth config for one remote, if present.
func RemoveRemoteAuth(appDataDir, repoPath, remoteName string) error {
	cfg := Load(appDataDir, repoPath)
	delete(cfg.Remotes, remoteName)
	return Save(appDataDir, repoPath, cfg)
}
