package main

import (
	"flag"

	"github.com/EvSecDev/grist/internal/grist"
)

func runTag(svc *grist.Service, repoPath string, args []string) error {
	fs := flag.NewFlagSet("tag", flag.ExitOnError)
	create := fs.String("create", "", "create a tag with this name")
	targetRef := fs.String("target", "", "ref to tag, default HEAD")
	message := fs.String("message", "", "annotation message; omit for a lightweight tag")
	delete_ := fs.String("delete", "", "delete a local tag with this name")
	deleteRemote := fs.String("delete-remote", "", "delete this tag name on --remote")
	remote := fs.String("remote", "origin", "remote name, used with --delete-remote")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *create != "":
		if err := svc.CreateTag(repoPath, *create, *targetRef, *message); err != nil {
			return err
		}
		return printOK()

	case *delete_ != "":
		if err := svc.DeleteTag(repoPath, *delete_); err != nil {
			return err
		}
		return printOK()

	case *deleteRemote != "":
		if err := svc.DeleteRemoteTag(repoPath, *remote, *deleteRemote); err != nil {
			return err
		}
		return printOK()

	default:
		tags, err := svc.GetTags(repoPath)
		if err != nil {
			return err
		}
		return printJSON(tags)
	}
}
