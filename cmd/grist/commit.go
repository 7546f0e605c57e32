package main

import (
	"flag"
	"fmt"

	"github.com/EvSecDev/grist/internal/grist"
)

func runCommit(svc *grist.Service, repoPath string, args []string) error {
	fs := flag.NewFlagSet("commit", flag.ExitOnError)
	message := fs.String("message", "", "commit message")
	amend := fs.Bool("amend", false, "amend HEAD instead of creating a new commit")
	lastMessage := fs.Bool("last-message", false, "print HEAD's full commit message and exit")
	cherryPick := fs.String("cherry-pick", "", "apply this commit's changes as a new commit")
	revert := fs.String("revert", "", "revert this commit")
	abortCherryPick := fs.Bool("abort-cherry-pick", false, "abort an in-progress cherry-pick")
	abortRevert := fs.Bool("abort-revert", false, "abort an in-progress revert")
	continueCherryPick := fs.Bool("continue-cherry-pick", false, "continue an in-progress cherry-pick")
	continueRevert := fs.Bool("continue-revert", false, "continue an in-progress revert")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *lastMessage:
		msg, err := svc.GetLastCommitMessage(repoPath)
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"message": msg})

	case *cherryPick != "":
		if err := svc.CherryPick(repoPath, *cherryPick); err != nil {
			return err
		}
		return printOK()

	case *revert != "":
		if err := svc.RevertCommit(repoPath, *revert); err != nil {
			return err
		}
		return printOK()

	case *abortCherryPick:
		if err := svc.AbortCherryPick(repoPath); err != nil {
			return err
		}
		return printOK()

	case *abortRevert:
		if err := svc.AbortRevert(repoPath); err != nil {
			return err
		}
		return printOK()

	case *continueCherryPick:
		if err := svc.ContinueCherryPick(repoPath); err != nil {
			return err
		}
		return printOK()

	case *continueRevert:
		if err := svc.ContinueRevert(repoPath); err != nil {
			return err
		}
		return printOK()

	default:
		if *message == "" {
			return fmt.Errorf("commit requires --message (or one of the cherry-pick/revert flags)")
		}
		hash, err := svc.CreateCommit(repoPath, *message, *amend)
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"hash": hash})
	}
}
