package main

import (
	"flag"

	"github.com/EvSecDev/grist/internal/grist"
)

func runStatus(svc *grist.Service, repoPath string, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	status, err := svc.GetStatus(repoPath)
	if err != nil {
		return err
	}
	return printJSON(status)
}

func runLog(svc *grist.Service, repoPath string, args []string) error {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	count := fs.Uint("count", 50, "number of commits to return")
	skip := fs.Uint("skip", 0, "number of commits to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	commits, err := svc.GetCommitLog(repoPath, uint32(*count), uint32(*skip))
	if err != nil {
		return err
	}
	return printJSON(commits)
}
