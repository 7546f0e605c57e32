package main

import (
	"flag"
	"fmt"

	"github.com/EvSecDev/grist/internal/grist"
)

func runBranch(svc *grist.Service, repoPath string, args []string) error {
	fs := flag.NewFlagSet("branch", flag.ExitOnError)
	create := fs.String("create", "", "create a branch with this name")
	startPoint := fs.String("start-point", "", "ref to start --create at, default HEAD")
	delete_ := fs.String("delete", "", "delete a local branch with this name")
	force := fs.Bool("force", false, "force --delete of a branch with unmerged commits")
	rename := fs.String("rename", "", "rename this branch")
	to := fs.String("to", "", "new name, used with --rename")
	checkout := fs.String("checkout", "", "switch the working tree to this branch")
	merge := fs.String("merge", "", "merge this branch into the current branch")
	noFF := fs.Bool("no-ff", false, "never fast-forward, used with --merge")
	rebase := fs.String("rebase", "", "rebase the current branch onto this ref")
	abortMerge := fs.Bool("abort-merge", false, "abort an in-progress merge")
	abortRebase := fs.Bool("abort-rebase", false, "abort an in-progress rebase")
	continueRebase := fs.Bool("continue-rebase", false, "continue an in-progress rebase")
	deleteRemote := fs.String("delete-remote", "", "delete this branch name on --remote")
	remote := fs.String("remote", "origin", "remote name, used with --delete-remote")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *create != "":
		if err := svc.CreateBranch(repoPath, *create, *startPoint); err != nil {
			return err
		}
		return printOK()

	case *delete_ != "":
		if err := svc.DeleteBranch(repoPath, *delete_, *force); err != nil {
			return err
		}
		return printOK()

	case *rename != "":
		if *to == "" {
			return fmt.Errorf("--rename requires --to")
		}
		if err := svc.RenameBranch(repoPath, *rename, *to); err != nil {
			return err
		}
		return printOK()

	case *checkout != "":
		if err := svc.Checkout(repoPath, *checkout); err != nil {
			return err
		}
		return printOK()

	case *merge != "":
		if err := svc.MergeBranch(repoPath, *merge, *noFF); err != nil {
			return err
		}
		return printOK()

	case *rebase != "":
		if err := svc.RebaseBranch(repoPath, *rebase); err != nil {
			return err
		}
		return printOK()

	case *abortMerge:
		if err := svc.AbortMerge(repoPath); err != nil {
			return err
		}
		return printOK()

	case *abortRebase:
		if err := svc.AbortRebase(repoPath); err != nil {
			return err
		}
		return printOK()

	case *continueRebase:
		if err := svc.ContinueRebase(repoPath); err != nil {
			return err
		}
		return printOK()

	case *deleteRemote != "":
		if err := svc.DeleteRemoteBranch(repoPath, *remote, *deleteRemote); err != nil {
			return err
		}
		return printOK()

	default:
		branches, err := svc.GetBranches(repoPath)
		if err != nil {
			return err
		}
		return printJSON(branches)
	}
}
