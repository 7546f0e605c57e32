package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// promptPassphrase reads a passphrase from the controlling terminal without
// echoing it, restoring terminal state on return or on SIGINT/SIGTERM.
func promptPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("not in a terminal, cannot prompt for a passphrase")
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to set terminal raw mode: %v", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Println()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		_ = term.Restore(fd, oldState)
		fmt.Println()
		os.Exit(1)
	}()

	fmt.Print(prompt)
	passphrase, err := term.ReadPassword(fd)
	if err != nil {
		return nil, fmt.Errorf("error reading passphrase: %v", err)
	}
	return passphrase, nil
}
