package grist

import (
	"strings"

	"github.com/EvSecDev/grist/internal/gitlog"
	"github.com/EvSecDev/grist/internal/gitproc"
)

// GetBranches lists local and remote-tracking branches.
func (s *Service) GetBranches(repoPath string) ([]gitlog.Branch, error) {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return nil, err
	}
	return gitlog.GetBranches(inv)
}

// CreateBranch creates name at HEAD (or at startPoint, if non-empty).
func (s *Service) CreateBranch(repoPath, name, startPoint string) error {
	args := []string{"branch", name}
	if startPoint != "" {
		args = append(args, startPoint)
	}
	err := s.runChecked(repoPath, args...)
	if cmdErr, ok := err.(*gitproc.CommandFailedError); ok && strings.Contains(cmdErr.Stderr, "already exists") {
		return &BranchExistsError{Name: name}
	}
	return err
}

// DeleteBranch deletes a local branch, forcing the deletion when force is
// set (required to delete a branch with unmerged commits).
func (s *Service) DeleteBranch(repoPath, name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	err := s.runChecked(repoPath, "branch", flag, name)
	if cmdErr, ok := err.(*gitproc.CommandFailedError); ok && strings.Contains(cmdErr.Stderr, "not found") {
		return &BranchNotFoundError{Name: name}
	}
	return err
}

// RenameBranch renames a local branch.
func (s *Service) RenameBranch(repoPath, oldName, newName string) error {
	return s.runChecked(repoPath, "branch", "-m", oldName, newName)
}

// Checkout switches the working tree to name.
func (s *Service) Checkout(repoPath, name string) error {
	return s.runChecked(repoPath, "checkout", name)
}

// MergeBranch merges name into the current branch.
func (s *Service) MergeBranch(repoPath, name string, noFF bool) error {
	args := []string{"merge", name}
	if noFF {
		args = append(args, "--no-ff")
	}
	return s.runDetectingConflict(repoPath, args...)
}

// RebaseBranch rebases the current branch onto onto.
func (s *Service) RebaseBranch(repoPath, onto string) error {
	return s.runDetectingConflict(repoPath, "rebase", onto)
}

// AbortMerge aborts an in-progress merge.
func (s *Service) AbortMerge(repoPath string) error {
	return s.runChecked(repoPath, "merge", "--abort")
}

// AbortRebase aborts an in-progress rebase.
func (s *Service) AbortRebase(repoPath string) error {
	return s.runChecked(repoPath, "rebase", "--abort")
}

// ContinueRebase continues an in-progress rebase after conflicts are
// resolved.
func (s *Service) ContinueRebase(repoPath string) error {
	return s.runDetectingConflict(repoPath, "rebase", "--continue")
}

// DeleteRemoteBranch deletes name on remote.
func (s *Service) DeleteRemoteBranch(repoPath, remote, name string) error {
	return s.runChecked(repoPath, "push", remote, "--delete", name)
}

// GetTags lists tags with their annotation metadata.
func (s *Service) GetTags(repoPath string) ([]gitlog.Tag, error) {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return nil, err
	}
	return gitlog.GetTags(inv)
}

// CreateTag creates name (annotated when message is non-empty) at
// targetRef, defaulting to HEAD.
func (s *Service) CreateTag(repoPath, name, targetRef, message string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	return gitlog.CreateTag(inv, name, targetRef, message)
}

// DeleteTag deletes a local tag.
func (s *Service) DeleteTag(repoPath, name string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	return gitlog.DeleteTag(inv, name)
}

// DeleteRemoteTag deletes name on remote.
func (s *Service) DeleteRemoteTag(repoPath, remote, name string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	return gitlog.DeleteRemoteTag(inv, remote, name)
}

// GetRemotes lists configured remotes.
func (s *Service) GetRemotes(repoPath string) ([]gitlog.Remote, error) {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return nil, err
	}
	return gitlog.GetRemotes(inv)
}

// AddRemote adds a new remote.
func (s *Service) AddRemote(repoPath, name, url string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	return gitlog.AddRemote(inv, name, url)
}

// RemoveRemote removes a configured remote.
func (s *Service) RemoveRemote(repoPath, name string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	return gitlog.RemoveRemote(inv, name)
}

// Fetch fetches from remote (every remote when empty), pruning stale
// remote-tracking refs when requested. keyPath routes through
// resolveSSHKey for authentication; an empty keyPath uses resolveSSHKey's
// ~/.ssh/config fallback.
func (s *Service) Fetch(repoPath, remote string, prune bool, keyPath string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	env, err := s.resolveSSHKey(keyPath)
	if err != nil {
		return err
	}
	return gitlog.Fetch(inv, remote, prune, env)
}

// Pull fetches and integrates remote/branch into the current branch,
// rebasing instead of merging when rebase is set.
func (s *Service) Pull(repoPath, remote, branch string, rebase bool, keyPath string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	env, err := s.resolveSSHKey(keyPath)
	if err != nil {
		return err
	}
	err = gitlog.Pull(inv, remote, branch, rebase, env)
	if _, ok := err.(*gitlog.MergeConflictError); ok {
		return &MergeConflictError{}
	}
	return err
}

// Push pushes the current branch (or branch, if non-empty) to remote.
func (s *Service) Push(repoPath, remote, branch string, force, setUpstream, pushTags bool, keyPath string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	env, err := s.resolveSSHKey(keyPath)
	if err != nil {
		return err
	}
	return gitlog.Push(inv, remote, branch, force, setUpstream, pushTags, env)
}

// TestConnection verifies that remote is reachable over the configured
// (or supplied) credentials, without mutating any refs.
func (s *Service) TestConnection(repoPath, remote, keyPath string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	env, err := s.resolveSSHKey(keyPath)
	if err != nil {
		return err
	}
	return gitlog.TestConnection(inv, remote, env)
}

// GetStashes lists the stash.
func (s *Service) GetStashes(repoPath string) ([]gitlog.Stash, error) {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return nil, err
	}
	return gitlog.GetStashes(inv)
}

// CreateStash stashes the current worktree/index state.
func (s *Service) CreateStash(repoPath, message string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	return gitlog.CreateStash(inv, message)
}

// ApplyStash applies stash@{index} without removing it from the list.
func (s *Service) ApplyStash(repoPath string, index int) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	return gitlog.ApplyStash(inv, index)
}

// PopStash applies stash@{index} and removes it from the list.
func (s *Service) PopStash(repoPath string, index int) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	return gitlog.PopStash(inv, index)
}

// DropStash removes stash@{index} without applying it.
func (s *Service) DropStash(repoPath string, index int) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	return gitlog.DropStash(inv, index)
}

// ClearStashes removes the entire stash list.
func (s *Service) ClearStashes(repoPath string) error {
	inv, err := s.invoker(repoPath)
	if err != nil {
		return err
	}
	return gitlog.ClearStashes(inv)
}
