// Package gitproc is the VCS invoker: it locates the git binary and runs it
// as a child process, capturing stdout/stderr/exit status, optionally piping
// stdin or injecting an environment overlay. It never interprets git's
// output; parsing is left to gitstatus, gitdiff, and gitlog.
package gitproc

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/EvSecDev/grist/internal/logging"
)

// candidatePaths are tried, in order, after the bare name on PATH.
func candidatePaths() []string {
	if runtime.GOOS == "windows" {
		return []string{
			`C:\Program Files\Git\bin\git.exe`,
			`C:\Program Files (x86)\Git\bin\git.exe`,
		}
	}
	return []string{
		"/usr/bin/git",
		"/usr/local/bin/git",
		"/opt/homebrew/bin/git",
	}
}

// Invoker runs git for one repository. Binary discovery happens once, at
// construction; there is no further caching or shared state.
type Invoker struct {
	gitPath string
	repoDir string
}

// Result carries the raw outcome of one git invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// New locates a usable git executable and verifies repoDir holds a .git
// directory. Binary discovery takes "git" from PATH when it is found there;
// otherwise it tries an OS-specific list of conventional install paths, and
// the first to answer a version probe wins.
func New(repoDir string) (*Invoker, error) {
	gitPath, err := findGit()
	if err != nil {
		return nil, err
	}

	gitDir := repoDir + string(os.PathSeparator) + ".git"
	if _, statErr := os.Stat(gitDir); statErr != nil {
		return nil, &NotARepositoryError{Path: repoDir}
	}

	return &Invoker{gitPath: gitPath, repoDir: repoDir}, nil
}

func findGit() (string, error) {
	if path, err := exec.LookPath("git"); err == nil {
		logging.Printf(logging.VerbosityProgress, "Using git from PATH: '%s'\n", path)
		return path, nil
	}

	for _, candidate := range candidatePaths() {
		logging.Printf(logging.VerbosityProgress, "Probing for git at '%s'\n", candidate)
		cmd := exec.Command(candidate, "--version")
		if err := cmd.Run(); err == nil {
			return candidate, nil
		}
	}

	return "", ErrGitNotFound
}

func (inv *Invoker) command(args []string) *exec.Cmd {
	cmd := exec.Command(inv.gitPath, args...)
	cmd.Dir = inv.repoDir
	return cmd
}

// Run executes git with args and returns stdout, stderr, and the exit code
// without interpreting non-zero exits as an error.
func (inv *Invoker) Run(args ...string) (Result, error) {
	return inv.runWithEnv(args, nil, nil)
}

// RunChecked is Run, but returns CommandFailed when the exit code is
// non-zero; on success it returns stdout alone.
func (inv *Invoker) RunChecked(args ...string) (string, error) {
	result, err := inv.Run(args...)
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", &CommandFailedError{Code: result.ExitCode, Stderr: result.Stderr}
	}
	return result.Stdout, nil
}

// RunRaw executes git and returns stdout as raw bytes, for content that must
// not be treated as text (e.g. `show <hash>:<path>` on a binary blob).
func (inv *Invoker) RunRaw(args ...string) ([]byte, error) {
	cmd := inv.command(args)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	exitCode, ioErr := exitCodeOf(runErr)
	if ioErr != nil {
		return nil, &IoError{Message: ioErr.Error()}
	}
	if exitCode != 0 {
		return nil, &CommandFailedError{Code: exitCode, Stderr: stderr.String()}
	}
	return stdout.Bytes(), nil
}

// RunWithStdin executes git, writing input to the child's stdin before
// waiting on exit. It is robust to the child exiting before all input is
// consumed (a broken pipe while writing is not itself surfaced as an error
// so long as the process subsequently reports a normal exit code).
func (inv *Invoker) RunWithStdin(args []string, input string) (Result, error) {
	cmd := inv.command(args)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return Result{}, &IoError{Message: err.Error()}
	}

	if err = cmd.Start(); err != nil {
		return Result{}, &IoError{Message: err.Error()}
	}

	_, writeErr := stdinPipe.Write([]byte(input))
	_ = stdinPipe.Close()
	if writeErr != nil {
		logging.Printf(logging.VerbosityData, "Write to git stdin ended early: %v\n", writeErr)
	}

	runErr := cmd.Wait()
	exitCode, ioErr := exitCodeOf(runErr)
	if ioErr != nil {
		return Result{}, &IoError{Message: ioErr.Error()}
	}

	return Result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode}, nil
}

// RunWithEnv is Run with additional environment variables overlaid onto the
// current process environment (notably GIT_SSH_COMMAND for authenticated
// transport).
func (inv *Invoker) RunWithEnv(args []string, env map[string]string) (Result, error) {
	return inv.runWithEnv(args, env, nil)
}

// RunWithEnvChecked is RunWithEnv plus the RunChecked non-zero-exit
// behaviour.
func (inv *Invoker) RunWithEnvChecked(args []string, env map[string]string) (string, error) {
	result, err := inv.RunWithEnv(args, env)
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", &CommandFailedError{Code: result.ExitCode, Stderr: result.Stderr}
	}
	return result.Stdout, nil
}

func (inv *Invoker) runWithEnv(args []string, env map[string]string, stdin []byte) (Result, error) {
	cmd := inv.command(args)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), flattenEnv(env)...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	logging.Printf(logging.VerbosityFullData, "Running: git %v\n", args)

	runErr := cmd.Run()
	exitCode, ioErr := exitCodeOf(runErr)
	if ioErr != nil {
		return Result{}, &IoError{Message: ioErr.Error()}
	}

	return Result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode}, nil
}

func flattenEnv(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	return out
}

// exitCodeOf reports the process exit code from the error returned by
// cmd.Run/cmd.Wait. A nil error means success (0). Any error other than a
// well-formed *exec.ExitError is a genuine I/O failure, returned as such.
func exitCodeOf(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if ok := asExitError(err, &exitErr); ok {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}

func asExitError(err error, target **exec.ExitError) bool {
	if exitErr, ok := err.(*exec.ExitError); ok {
		*target = exitErr
		return true
	}
	return false
}
