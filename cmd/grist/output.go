package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// printJSON writes v to stdout as indented JSON, the shape every read
// subcommand returns for the UI to parse.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printOK writes a minimal {"ok":true} acknowledgement for subcommands that
// mutate state but have nothing else to report.
func printOK() error {
	fmt.Println(`{"ok":true}`)
	return nil
}
