package grist

import "fmt"

// sshKeyLockedPrefix is the sentinel error-string prefix the UI uses to
// distinguish a locked-key condition from every other command failure.
const sshKeyLockedPrefix = "SSH_KEY_LOCKED:"

// SSHKeyLockedError formats as "SSH_KEY_LOCKED:<path>" verbatim, so a
// caller that only has the error's string (e.g. across an IPC boundary)
// can still recognise it by prefix.
type SSHKeyLockedError struct {
	Path string
}

func (e *SSHKeyLockedError) Error() string {
	return sshKeyLockedPrefix + e.Path
}

// MergeConflictError reports that a merge/rebase/pull/cherry-pick/revert
// produced a conflict rather than failing outright; the UI treats this as
// a distinct category offering continue/abort controls, not a failure.
type MergeConflictError struct{}

func (e *MergeConflictError) Error() string {
	return "merge conflict"
}

// UncommittedChangesError reports that an operation requires a clean
// working tree.
type UncommittedChangesError struct{}

func (e *UncommittedChangesError) Error() string {
	return "uncommitted changes present"
}

// BranchExistsError reports a branch-creation collision.
type BranchExistsError struct {
	Name string
}

func (e *BranchExistsError) Error() string {
	return fmt.Sprintf("branch already exists: %s", e.Name)
}

// BranchNotFoundError reports a branch operation against a name git
// doesn't know.
type BranchNotFoundError struct {
	Name string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch not found: %s", e.Name)
}

// RemoteNotFoundError reports a remote operation against a name git
// doesn't know.
type RemoteNotFoundError struct {
	Name string
}

func (e *RemoteNotFoundError) Error() string {
	return fmt.Sprintf("remote not found: %s", e.Name)
}

// OperationInProgressError reports that a merge/rebase/cherry-pick/revert
// is already underway and must be continued or aborted first.
type OperationInProgressError struct {
	Operation string
}

func (e *OperationInProgressError) Error() string {
	return fmt.Sprintf("operation already in progress: %s", e.Operation)
}

// DecryptionFailedError wraps a key-material failure distinct from a
// wrong passphrase (e.g. materialising a decrypted key while it is
// locked).
type DecryptionFailedError struct {
	Message string
}

func (e *DecryptionFailedError) Error() string {
	return fmt.Sprintf("decryption failed: %s", e.Message)
}
