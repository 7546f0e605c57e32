package main

import (
	"flag"
	"fmt"

	"github.com/EvSecDev/grist/internal/grist"
)

func runKeys(svc *grist.Service, repoPath string, args []string) error {
	fs := flag.NewFlagSet("keys", flag.ExitOnError)
	check := fs.String("check", "", "classify a key file's format and encryption state")
	convert := fs.String("convert", "", "convert a PPK key at this path to openssh-key-v1")
	convertedPath := fs.String("converted-path", "", "print a prior conversion's output path, if any")
	needsUnlock := fs.String("needs-unlock", "", "report whether this key is passphrase-protected and not cached")
	isUnlocked := fs.String("is-unlocked", "", "report whether this key currently has a cached passphrase")
	unlock := fs.String("unlock", "", "verify a passphrase against this key and cache it")
	lock := fs.String("lock", "", "discard the cached passphrase for this key")
	lockAll := fs.Bool("lock-all", false, "discard every cached passphrase")
	passphrase := fs.String("passphrase", "", "passphrase for --convert or --unlock; omitted means prompt interactively")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *check != "":
		info, err := svc.CheckSSHKey(*check)
		if err != nil {
			return err
		}
		return printJSON(info)

	case *convert != "":
		pass, err := passphraseOrPrompt(*passphrase, "Passphrase for "+*convert+": ")
		if err != nil {
			return err
		}
		destPath, err := svc.ConvertSSHKey(*convert, pass)
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"path": destPath})

	case *convertedPath != "":
		destPath, err := svc.GetConvertedKeyPath(*convertedPath)
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"path": destPath})

	case *needsUnlock != "":
		need, err := svc.SSHKeyNeedsUnlock(*needsUnlock)
		if err != nil {
			return err
		}
		return printJSON(map[string]bool{"needsUnlock": need})

	case *isUnlocked != "":
		return printJSON(map[string]bool{"unlocked": svc.SSHKeyIsUnlocked(*isUnlocked)})

	case *unlock != "":
		pass, err := passphraseOrPrompt(*passphrase, "Passphrase for "+*unlock+": ")
		if err != nil {
			return err
		}
		if err := svc.SSHKeyUnlock(*unlock, pass); err != nil {
			return err
		}
		return printOK()

	case *lock != "":
		svc.SSHKeyLock(*lock)
		return printOK()

	case *lockAll:
		svc.SSHKeysLockAll()
		return printOK()

	default:
		return fmt.Errorf("keys requires one of --check, --convert, --converted-path, --needs-unlock, --is-unlocked, --unlock, --lock, --lock-all")
	}
}

// passphraseOrPrompt returns flagValue if set, otherwise prompts the
// controlling terminal interactively.
func passphraseOrPrompt(flagValue, prompt string) ([]byte, error) {
	if flagValue != "" {
		return []byte(flagValue), nil
	}
	return promptPassphrase(prompt)
}
