// Package grist is the command surface (C9): the outer layer the UI calls
// into. Each method opens an invoker for the target repository, delegates to gitstatus/gitdiff/gitlog/ppk/keycache,
// and returns either a structured value or an error the caller can match
// on (or stringify, for an IPC boundary that only carries text).
package grist

import (
	"encoding/base64"
	"strings"

	"github.com/EvSecDev/grist/internal/gitdiff"
	"github.com/EvSecDev/grist/internal/gitlog"
	"github.com/EvSecDev/grist/internal/gitproc"
	"github.com/EvSecDev/grist/internal/gitstatus"
	"github.com/EvSecDev/grist/internal/logging"
	"github.com/EvSecDev/grist/internal/remoteauth"
)

// Service is the command surface for one app-data root. It holds no
// per-repository state: every method opens a fresh invoker for repoPath,
// matching the "no caching beyond the binary search" resource model.
type Service struct {
	AppDataDir string
}

// New returns a Service rooted at appDataDir (used for the remote-auth
// store and the converted-key directory).
func New(appDataDir string) *Service {
	return &Service{AppDataDir: appDataDir}
}

func (s *Service) invoker(repoPath string) (*gitproc.Invoker, error) {
	return gitproc.New(repoPath)
}

// GetStatus returns the full repository status snapshot.
func (s *Service) GetStatus(repoPath string) (gitstatus.Status, error) {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return gitstatus.Status{}, err
	}
	return gitstatus.Get(inv)
}

// StageFile stages one path's full working-tree contents.
func (s *Service) StageFile(repoPath, path string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	_, err = inv.RunChecked("add", "--", path)
	return err
}

// StageAll stages every tracked and untracked change.
func (s *Service) StageAll(repoPath string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	_, err = inv.RunChecked("add", "-A")
	return err
}

// UnstageFile removes path from the index without touching the worktree.
func (s *Service) UnstageFile(repoPath, path string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	_, err = inv.RunChecked("restore", "--staged", "--", path)
	return err
}

// UnstageAll removes every path from the index.
func (s *Service) UnstageAll(repoPath string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	_, err = inv.RunChecked("restore", "--staged", ".")
	return err
}

// DiscardChanges reverts path's worktree contents to the version in the
// index, or deletes path when isUntracked.
func (s *Service) DiscardChanges(repoPath, path string, isUntracked bool) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	if isUntracked {
		_, err = inv.RunChecked("clean", "-f", "--", path)
		return err
	}
	_, err = inv.RunChecked("checkout", "--", path)
	return err
}

// GetFileDiff returns the parsed diff for one path, staged or unstaged,
// optionally ignoring end-of-line-only changes.
func (s *Service) GetFileDiff(repoPath, path string, staged, ignoreCR bool) (gitdiff.FileDiff, error) {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return gitdiff.FileDiff{}, err
	}

	args := []string{"diff"}
	if staged {
		args = append(args, "--cached")
	}
	if ignoreCR {
		args = append(args, "--ignore-cr-at-eol")
	}
	args = append(args, "--", path)

	output, err := inv.RunChecked(args...)
	if err != nil {
		return gitdiff.FileDiff{}, err
	}
	return gitdiff.ParseDiff(output, path), nil
}

// GetUntrackedFileDiff synthesises a FileDiff for an untracked file by
// diffing against /dev/null, so the UI can render it the same way as a
// tracked addition.
func (s *Service) GetUntrackedFileDiff(repoPath, path string) (gitdiff.FileDiff, error) {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return gitdiff.FileDiff{}, err
	}
	result, err := inv.Run("diff", "--no-index", "--", "/dev/null", path)
	if err != nil {
		return gitdiff.FileDiff{}, err
	}
	// diff --no-index exits 1 when the two sides differ, the normal case here.
	if result.ExitCode != 0 && result.ExitCode != 1 {
		return gitdiff.FileDiff{}, &gitproc.CommandFailedError{Code: result.ExitCode, Stderr: result.Stderr}
	}
	return gitdiff.ParseDiff(result.Stdout, path), nil
}

// GetCommitDiff returns the parsed per-file diffs for one commit.
func (s *Service) GetCommitDiff(repoPath, hash string) ([]gitdiff.FileDiff, error) {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return nil, err
	}
	return gitdiff.GetCommitDiff(inv, hash)
}

// StageLines applies a partial patch built from the current unstaged
// diff, staging only the selected lines.
func (s *Service) StageLines(repoPath, path string, selections []gitdiff.LineSelection) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	return gitdiff.StageLines(inv, path, selections)
}

// UnstageLines applies the reverse of a partial patch built from the
// current staged diff, unstaging only the selected lines.
func (s *Service) UnstageLines(repoPath, path string, selections []gitdiff.LineSelection) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	return gitdiff.UnstageLines(inv, path, selections)
}

// GetBlobBase64 returns hash:path's raw content, base64-encoded, for
// binary/image preview in the UI.
func (s *Service) GetBlobBase64(repoPath, hash, path string) (string, error) {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return "", err
	}
	raw, err := inv.RunRaw("show", hash+":"+path)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// CreateCommit commits the current index, optionally amending HEAD.
func (s *Service) CreateCommit(repoPath, message string, amend bool) (string, error) {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return "", err
	}
	args := []string{"commit", "-m", message}
	if amend {
		args = append(args, "--amend")
	}
	if _, err := inv.RunChecked(args...); err != nil {
		return "", err
	}
	hash, err := inv.RunChecked("rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(hash), nil
}

// GetLastCommitMessage returns HEAD's full commit message.
func (s *Service) GetLastCommitMessage(repoPath string) (string, error) {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return "", err
	}
	msg, err := inv.RunChecked("log", "-1", "--format=%B")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(msg, "\n"), nil
}

// CherryPick applies hash's changes as a new commit, surfacing a conflict
// as MergeConflictError instead of a bare command failure.
func (s *Service) CherryPick(repoPath, hash string) error {
	return s.runDetectingConflict(repoPath, "cherry-pick", hash)
}

// RevertCommit reverts hash, surfacing a conflict as MergeConflictError.
func (s *Service) RevertCommit(repoPath, hash string) error {
	return s.runDetectingConflict(repoPath, "revert", hash)
}

// AbortCherryPick aborts an in-progress cherry-pick.
func (s *Service) AbortCherryPick(repoPath string) error {
	return s.runChecked(repoPath, "cherry-pick", "--abort")
}

// AbortRevert aborts an in-progress revert.
func (s *Service) AbortRevert(repoPath string) error {
	return s.runChecked(repoPath, "revert", "--abort")
}

// ContinueCherryPick continues an in-progress cherry-pick after conflicts
// are resolved.
func (s *Service) ContinueCherryPick(repoPath string) error {
	return s.runChecked(repoPath, "cherry-pick", "--continue")
}

// ContinueRevert continues an in-progress revert after conflicts are
// resolved.
func (s *Service) ContinueRevert(repoPath string) error {
	return s.runChecked(repoPath, "revert", "--continue")
}

func (s *Service) runChecked(repoPath string, args ...string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	_, err = inv.RunChecked(args...)
	return err
}

// runDetectingConflict runs args and, on failure, inspects stdout/stderr
// for the word CONFLICT before falling back to the underlying error.
func (s *Service) runDetectingConflict(repoPath string, args ...string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	result, err := inv.Run(args...)
	if err != nil {
		return err
	}
	if result.ExitCode == 0 {
		return nil
	}
	if strings.Contains(result.Stdout, "CONFLICT") || strings.Contains(result.Stderr, "CONFLICT") {
		logging.Printf(logging.VerbosityStandard, "      Merge conflict detected during '%s'\n", strings.Join(args, " "))
		return &MergeConflictError{}
	}
	return &gitproc.CommandFailedError{Code: result.ExitCode, Stderr: result.Stderr}
}

// GetCommitLog returns up to count commits, skipping the first skip.
func (s *Service) GetCommitLog(repoPath string, count, skip uint32) ([]gitlog.Commit, error) {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return nil, err
	}
	return gitlog.GetCommitLog(inv, count, skip)
}

// GetRemoteAuth returns the stored auth config for one remote.
func (s *Service) GetRemoteAuth(repoPath, remoteName string) remoteauth.Config {
	return remoteauth.GetRemoteAuth(s.AppDataDir, repoPath, remoteName)
}

// SetRemoteAuth persists the auth config for one remote.
func (s *Service) SetRemoteAuth(repoPath, remoteName string, cfg remoteauth.Config) error {
	return remoteauth.SetRemoteAuth(s.AppDataDir, repoPath, remoteName, cfg)
}

// RemoveRemoteAuth deletes the stored auth config for one remote.
func (s *Service) RemoveRemoteAuth(repoPath, remoteName string) error {
	return remoteauth.RemoveRemoteAuth(s.AppDataDir, repoPath, remoteName)
}
