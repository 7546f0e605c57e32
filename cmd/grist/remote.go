package main

import (
	"flag"
	"fmt"

	"github.com/EvSecDev/grist/internal/grist"
	"github.com/EvSecDev/grist/internal/remoteauth"
)

func runRemote(svc *grist.Service, repoPath string, args []string) error {
	fs := flag.NewFlagSet("remote", flag.ExitOnError)
	add := fs.String("add", "", "add a remote with this name")
	url := fs.String("url", "", "remote URL, used with --add")
	remove := fs.String("remove", "", "remove a remote with this name")
	name := fs.String("name", "origin", "remote name for fetch/pull/push/test-connection/auth flags")
	branch := fs.String("branch", "", "branch name, default the current branch")
	key := fs.String("key", "", "SSH private key path to authenticate with")
	fetch := fs.Bool("fetch", false, "fetch from --name")
	prune := fs.Bool("prune", false, "prune stale remote-tracking refs, used with --fetch")
	pull := fs.Bool("pull", false, "fetch and integrate --name/--branch")
	rebase := fs.Bool("rebase", false, "rebase instead of merge, used with --pull")
	push := fs.Bool("push", false, "push to --name/--branch")
	force := fs.Bool("force", false, "force-push, used with --push")
	setUpstream := fs.Bool("set-upstream", false, "set the upstream, used with --push")
	pushTags := fs.Bool("push-tags", false, "also push tags, used with --push")
	testConnection := fs.Bool("test-connection", false, "verify --name is reachable without mutating refs")
	authGet := fs.Bool("auth-get", false, "print the stored auth config for --name")
	authSet := fs.String("auth-set", "", "store this auth type (ssh-agent, ssh-key, none) for --name")
	authRemove := fs.Bool("auth-remove", false, "remove the stored auth config for --name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *add != "":
		if *url == "" {
			return fmt.Errorf("--add requires --url")
		}
		if err := svc.AddRemote(repoPath, *add, *url); err != nil {
			return err
		}
		return printOK()

	case *remove != "":
		if err := svc.RemoveRemote(repoPath, *remove); err != nil {
			return err
		}
		return printOK()

	case *fetch:
		if err := svc.Fetch(repoPath, *name, *prune, *key); err != nil {
			return err
		}
		return printOK()

	case *pull:
		if err := svc.Pull(repoPath, *name, *branch, *rebase, *key); err != nil {
			return err
		}
		return printOK()

	case *push:
		if err := svc.Push(repoPath, *name, *branch, *force, *setUpstream, *pushTags, *key); err != nil {
			return err
		}
		return printOK()

	case *testConnection:
		if err := svc.TestConnection(repoPath, *name, *key); err != nil {
			return err
		}
		return printOK()

	case *authGet:
		return printJSON(svc.GetRemoteAuth(repoPath, *name))

	case *authSet != "":
		cfg := remoteauth.Config{AuthType: remoteauth.AuthType(*authSet), SshKeyPath: *key}
		if err := svc.SetRemoteAuth(repoPath, *name, cfg); err != nil {
			return err
		}
		return printOK()

	case *authRemove:
		if err := svc.RemoveRemoteAuth(repoPath, *name); err != nil {
			return err
		}
		return printOK()

	default:
		remotes, err := svc.GetRemotes(repoPath)
		if err != nil {
			return err
		}
		return printJSON(remotes)
	}
}
