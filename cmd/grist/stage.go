package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/EvSecDev/grist/internal/gitdiff"
	"github.com/EvSecDev/grist/internal/grist"
)

// parseSelections parses "hunkIndex:lineIndex,hunkIndex:lineIndex,..." into
// the LineSelection slice gitdiff's partial-patch builder expects.
func parseSelections(raw string) ([]gitdiff.LineSelection, error) {
	if raw == "" {
		return nil, nil
	}

	var selections []gitdiff.LineSelection
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed line selection %q, want hunkIndex:lineIndex", pair)
		}
		hunkIndex, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("malformed hunk index in %q: %v", pair, err)
		}
		lineIndex, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("malformed line index in %q: %v", pair, err)
		}
		selections = append(selections, gitdiff.LineSelection{HunkIndex: hunkIndex, LineIndex: lineIndex})
	}
	return selections, nil
}

func runStage(svc *grist.Service, repoPath string, args []string) error {
	fs := flag.NewFlagSet("stage", flag.ExitOnError)
	path := fs.String("path", "", "file to stage")
	all := fs.Bool("all", false, "stage every tracked and untracked change")
	lines := fs.String("lines", "", "comma-separated hunkIndex:lineIndex pairs for a partial stage")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *all {
		if err := svc.StageAll(repoPath); err != nil {
			return err
		}
		return printOK()
	}
	if *path == "" {
		return fmt.Errorf("stage requires --path or --all")
	}
	if *lines != "" {
		selections, err := parseSelections(*lines)
		if err != nil {
			return err
		}
		if err := svc.StageLines(repoPath, *path, selections); err != nil {
			return err
		}
		return printOK()
	}
	if err := svc.StageFile(repoPath, *path); err != nil {
		return err
	}
	return printOK()
}

func runUnstage(svc *grist.Service, repoPath string, args []string) error {
	fs := flag.NewFlagSet("unstage", flag.ExitOnError)
	path := fs.String("path", "", "file to unstage")
	all := fs.Bool("all", false, "unstage every staged change")
	lines := fs.String("lines", "", "comma-separated hunkIndex:lineIndex pairs for a partial unstage")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *all {
		if err := svc.UnstageAll(repoPath); err != nil {
			return err
		}
		return printOK()
	}
	if *path == "" {
		return fmt.Errorf("unstage requires --path or --all")
	}
	if *lines != "" {
		selections, err := parseSelections(*lines)
		if err != nil {
			return err
		}
		if err := svc.UnstageLines(repoPath, *path, selections); err != nil {
			return err
		}
		return printOK()
	}
	if err := svc.UnstageFile(repoPath, *path); err != nil {
		return err
	}
	return printOK()
}

func runDiscard(svc *grist.Service, repoPath string, args []string) error {
	fs := flag.NewFlagSet("discard", flag.ExitOnError)
	path := fs.String("path", "", "file to discard changes for")
	untracked := fs.Bool("untracked", false, "path is untracked; delete it instead of reverting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("discard requires --path")
	}
	if err := svc.DiscardChanges(repoPath, *path, *untracked); err != nil {
		return err
	}
	return printOK()
}
