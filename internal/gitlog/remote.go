package gitlog

import (
	"strings"

	"github.com/EvSecDev/grist/internal/gitproc"
)

// GetRemotes lists configured remotes, merging the fetch and push URL rows
// `remote -v` reports for each name.
func GetRemotes(inv *gitproc.Invoker) ([]Remote, error) {
	output, err := inv.RunChecked("remote", "-v")
	if err != nil {
		return nil, err
	}
	return parseRemotes(output), nil
}

func parseRemotes(output string) []Remote {
	index := make(map[string]int)
	var remotes []Remote

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		name, url, kind := fields[0], fields[1], fields[2]

		pos, ok := index[name]
		if !ok {
			remotes = append(remotes, Remote{Name: name})
			pos = len(remotes) - 1
			index[name] = pos
		}

		switch kind {
		case "(fetch)":
			remotes[pos].FetchURL = url
		case "(push)":
			remotes[pos].PushURL = url
		}
	}

	return remotes
}

// AddRemote registers a new remote.
func AddRemote(inv *gitproc.Invoker, name, url string) error {
	_, err := inv.RunChecked("remote", "add", name, url)
	return err
}

// RemoveRemote deletes a configured remote.
func RemoveRemote(inv *gitproc.Invoker, name string) error {
	_, err := inv.RunChecked("remote", "remove", name)
	return err
}

// Fetch fetches from remote (or all remotes when empty), optionally
// pruning, with env overlaying authentication (typically GIT_SSH_COMMAND).
func Fetch(inv *gitproc.Invoker, remote string, prune bool, env map[string]string) error {
	args := []string{"fetch"}
	if remote != "" {
		args = append(args, remote)
	} else {
		args = append(args, "--all")
	}
	if prune {
		args = append(args, "--prune")
	}
	_, err := inv.RunWithEnvChecked(args, env)
	return err
}

// Pull pulls from remote/branch, optionally rebasing. A mention of
// CONFLICT in stdout or stderr is surfaced as MergeConflictError rather
// than a generic command failure.
func Pull(inv *gitproc.Invoker, remote, branch string, rebase bool, env map[string]string) error {
	args := []string{"pull"}
	if rebase {
		args = append(args, "--rebase")
	}
	if remote != "" {
		args = append(args, remote)
	}
	if branch != "" {
		args = append(args, branch)
	}

	result, err := inv.RunWithEnv(args, env)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		if strings.Contains(result.Stdout, "CONFLICT") || strings.Contains(result.Stderr, "CONFLICT") {
			return &MergeConflictError{}
		}
		return &gitproc.CommandFailedError{Code: result.ExitCode, Stderr: result.Stderr}
	}
	return nil
}

// Push pushes remote/branch with the given options.
func Push(inv *gitproc.Invoker, remote, branch string, force, setUpstream, pushTags bool, env map[string]string) error {
	args := []string{"push"}
	if force {
		args = append(args, "--force")
	}
	if setUpstream {
		args = append(args, "-u")
	}
	if pushTags {
		args = append(args, "--tags")
	}
	if remote != "" {
		args = append(args, remote)
	}
	if branch != "" {
		args = append(args, branch)
	}
	_, err := inv.RunWithEnvChecked(args, env)
	return err
}

// TestConnection probes SSH connectivity to remote without mutating state.
func TestConnection(inv *gitproc.Invoker, remote string, env map[string]string) error {
	_, err := inv.RunWithEnvChecked([]string{"ls-remote", "--heads", remote}, env)
	return err
}

// MergeConflictError reports that a pull stopped due to a merge conflict.
type MergeConflictError struct{}

func (e *MergeConflictError) Error() string {
	return "merge conflict"
}
