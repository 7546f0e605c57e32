// Package sshidentity resolves a default SSH identity file from the
// user's ~/.ssh/config when a command is not given an explicit key path,
// and builds the GIT_SSH_COMMAND string that routes git's own ssh
// transport through a specific identity.
package sshidentity

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/kballard/go-shellquote"
	"github.com/kevinburke/ssh_config"

	"github.com/EvSecDev/grist/internal/logging"
)

// DefaultConfigPath returns the user's ~/.ssh/config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to find home directory: %v", err)
	}
	return filepath.Join(home, ".ssh", "config"), nil
}

// ResolveIdentityFile looks up the IdentityFile configured for host in the
// user's ~/.ssh/config, returning "" (no error) when the file is absent or
// the host has no IdentityFile entry — a default identity is an
// enrichment, not a requirement.
func ResolveIdentityFile(host string) (string, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return "", err
	}

	configFile, err := os.Open(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading ssh config failed: %v", err)
	}
	defer configFile.Close()

	cfg, err := ssh_config.Decode(configFile)
	if err != nil {
		return "", fmt.Errorf("failed decoding ssh config: %v", err)
	}

	identity, err := cfg.Get(host, "IdentityFile")
	if err != nil || identity == "" {
		return "", nil
	}

	logging.Printf(4, "      Resolved default identity '%s' for host '%s'\n", identity, host)
	return expandHome(identity), nil
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// BuildGitSSHCommand builds the GIT_SSH_COMMAND value that routes git's
// ssh transport through keyPath, matching the exact flag set required for
// a non-interactive, single-identity connection. The key path is quoted
// with shellquote on unix (double-quoted verbatim on Windows, where cmd.exe
// has no single-quote convention).
func BuildGitSSHCommand(keyPath string) string {
	quotedPath := keyPath
	if runtime.GOOS == "windows" {
		quotedPath = "\"" + keyPath + "\""
	} else {
		quotedPath = shellquote.Join(keyPath)
	}

	return fmt.Sprintf(
		"ssh -i %s -o IdentitiesOnly=yes -o BatchMode=yes -o StrictHostKeyChecking=accept-new",
		quotedPath,
	)
}
