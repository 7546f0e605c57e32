// grist
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/EvSecDev/grist/internal/config"
	"github.com/EvSecDev/grist/internal/grist"
	"github.com/EvSecDev/grist/internal/logging"
)

const progVersion = "v0.1.0"

const usage = `
grist - backend command surface for a desktop git client

  Usage: grist [global options] <command> [subcommand] [options]

  Global options:
    -C, --repo <path>        Repository to operate on [default: DefaultRepoDir
                              from the config file, else cwd]
        --app-data <path>    Override the app-data directory used for the
                              remote-auth store and converted key files
    -v, --verbose <0...5>    Verbosity level [default: 1]
    -V, --version            Show version and exit
    -h, --help                Show this help menu

  Commands:
    status, diff, stage, unstage, discard, commit, branch, tag, remote,
    stash, keys, log

  Run 'grist <command> -h' for a command's own options.
`

func main() {
	var repoPath string
	var appDataOverride string
	var verbosity int
	var versionRequested bool

	flag.StringVar(&repoPath, "C", "", "")
	flag.StringVar(&repoPath, "repo", "", "")
	flag.StringVar(&appDataOverride, "app-data", "", "")
	flag.IntVar(&verbosity, "v", 1, "")
	flag.IntVar(&verbosity, "verbose", 1, "")
	flag.BoolVar(&versionRequested, "V", false, "")
	flag.BoolVar(&versionRequested, "version", false, "")

	flag.Usage = func() { fmt.Printf("Usage: %s [OPTIONS]...%s", os.Args[0], usage) }
	flag.Parse()

	if versionRequested {
		fmt.Printf("grist %s\n", progVersion)
		fmt.Printf("Built using %s(%s) for %s on %s\n", runtime.Version(), runtime.Compiler, runtime.GOOS, runtime.GOARCH)
		return
	}

	logging.SetLevel(verbosity)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	var defaults config.Defaults
	if defaultsPath, err := config.DefaultPath(); err == nil {
		defaults, _ = config.Load(defaultsPath)
	}
	if defaults.Verbosity != 0 && verbosity == 1 {
		logging.SetLevel(defaults.Verbosity)
	}

	if repoPath == "" {
		repoPath = defaults.DefaultRepoDir
	}
	if repoPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		repoPath = cwd
	}

	appDataDir := appDataOverride
	if appDataDir == "" {
		appDataDir, _ = defaults.ResolveAppDataDir()
	}

	svc := grist.New(appDataDir)

	if err := dispatch(svc, repoPath, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
