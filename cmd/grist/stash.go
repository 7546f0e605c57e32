package main

import (
	"flag"

	"github.com/EvSecDev/grist/internal/grist"
)

func runStash(svc *grist.Service, repoPath string, args []string) error {
	fs := flag.NewFlagSet("stash", flag.ExitOnError)
	create := fs.Bool("create", false, "stash the current worktree and index state")
	message := fs.String("message", "", "message for --create")
	apply := fs.Int("apply", -1, "apply stash@{index} without removing it")
	pop := fs.Int("pop", -1, "apply stash@{index} and remove it")
	drop := fs.Int("drop", -1, "remove stash@{index} without applying it")
	clear := fs.Bool("clear", false, "remove the entire stash list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *create:
		if err := svc.CreateStash(repoPath, *message); err != nil {
			return err
		}
		return printOK()

	case *apply >= 0:
		if err := svc.ApplyStash(repoPath, *apply); err != nil {
			return err
		}
		return printOK()

	case *pop >= 0:
		if err := svc.PopStash(repoPath, *pop); err != nil {
			return err
		}
		return printOK()

	case *drop >= 0:
		if err := svc.DropStash(repoPath, *drop); err != nil {
			return err
		}
		return printOK()

	case *clear:
		if err := svc.ClearStashes(repoPath); err != nil {
			return err
		}
		return printOK()

	default:
		stashes, err := svc.GetStashes(repoPath)
		if err != nil {
			return err
		}
		return printJSON(stashes)
	}
}
