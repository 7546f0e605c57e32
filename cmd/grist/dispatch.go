package main

import (
	"fmt"

	"github.com/EvSecDev/grist/internal/grist"
)

// dispatch routes one top-level subcommand to its handler. Each handler owns
// its own flag.FlagSet, mirroring the flat per-flag registration style used
// throughout the rest of this command surface rather than a generic command
// tree.
func dispatch(svc *grist.Service, repoPath, command string, args []string) error {
	switch command {
	case "status":
		return runStatus(svc, repoPath, args)
	case "diff":
		return runDiff(svc, repoPath, args)
	case "stage":
		return runStage(svc, repoPath, args)
	case "unstage":
		return runUnstage(svc, repoPath, args)
	case "discard":
		return runDiscard(svc, repoPath, args)
	case "commit":
		return runCommit(svc, repoPath, args)
	case "branch":
		return runBranch(svc, repoPath, args)
	case "tag":
		return runTag(svc, repoPath, args)
	case "remote":
		return runRemote(svc, repoPath, args)
	case "stash":
		return runStash(svc, repoPath, args)
	case "keys":
		return runKeys(svc, repoPath, args)
	case "log":
		return runLog(svc, repoPath, args)
	default:
		return fmt.Errorf("unknown command %q, run with -h for the command list", command)
	}
}
