package main

import (
	"flag"
	"fmt"

	"github.com/EvSecDev/grist/internal/grist"
)

func runDiff(svc *grist.Service, repoPath string, args []string) error {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	path := fs.String("path", "", "file path, relative to the repository root")
	staged := fs.Bool("staged", false, "diff the index instead of the worktree")
	ignoreCR := fs.Bool("ignore-cr", false, "ignore end-of-line-only changes")
	untracked := fs.Bool("untracked", false, "path is untracked; diff against /dev/null")
	commit := fs.String("commit", "", "diff every file touched by this commit instead of one path")
	blob := fs.Bool("blob", false, "fetch path's raw content at hash, base64-encoded")
	hash := fs.String("hash", "", "commit or blob hash, used with --commit or --blob")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *commit != "":
		diffs, err := svc.GetCommitDiff(repoPath, *commit)
		if err != nil {
			return err
		}
		return printJSON(diffs)

	case *blob:
		if *path == "" || *hash == "" {
			return fmt.Errorf("--blob requires --path and --hash")
		}
		content, err := svc.GetBlobBase64(repoPath, *hash, *path)
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"content": content})

	case *untracked:
		if *path == "" {
			return fmt.Errorf("--untracked requires --path")
		}
		diff, err := svc.GetUntrackedFileDiff(repoPath, *path)
		if err != nil {
			return err
		}
		return printJSON(diff)

	default:
		if *path == "" {
			return fmt.Errorf("diff requires --path (or --commit, or --blob)")
		}
		diff, err := svc.GetFileDiff(repoPath, *path, *staged, *ignoreCR)
		if err != nil {
			return err
		}
		return printJSON(diff)
	}
}
