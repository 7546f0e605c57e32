// Package logging provides the verbosity-gated message printer shared by the
// CLI and the command surface, mirroring the console/journald split the
// controller uses for its own progress output.
package logging

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/coreos/go-systemd/journal"
)

// Verbosity levels, low to high, matching the controller's own scale.
const (
	VerbosityStandard  = 1
	VerbosityProgress  = 2
	VerbosityData      = 3
	VerbosityFullData   = 4
	VerbosityDebug      = 5
)

var (
	level       = VerbosityStandard
	levelMutex  sync.RWMutex
	journaldOK  bool
	journaldSet sync.Once
)

// SetLevel sets the global verbosity threshold. Messages requiring a higher
// level than this are suppressed.
func SetLevel(v int) {
	levelMutex.Lock()
	defer levelMutex.Unlock()
	level = v
}

func currentLevel() int {
	levelMutex.RLock()
	defer levelMutex.RUnlock()
	return level
}

// Printf prints message (fmt.Printf-style) to stderr if requiredLevel is at
// or below the configured verbosity, and mirrors it to the systemd journal
// when one is reachable. A verbosity of 0 silences all output.
func Printf(requiredLevel int, message string, vars ...interface{}) {
	cur := currentLevel()
	if cur == 0 {
		return
	}
	if requiredLevel > cur {
		return
	}

	formatted := message
	if cur >= VerbosityProgress {
		timestamp := time.Now().Format("15:04:05.000000")
		formatted = timestamp + ": " + formatted
	}

	fmt.Fprintf(os.Stderr, formatted, vars...)
	journalSend(requiredLevel, fmt.Sprintf(message, vars...))
}

// journalSend mirrors a message to the systemd journal, never failing the
// caller when no journald socket is present (a desktop session usually has
// none, or runs on a platform without one).
func journalSend(requiredLevel int, message string) {
	journaldSet.Do(func() {
		journaldOK = journal.Enabled()
	})
	if !journaldOK {
		return
	}

	priority := journal.PriInfo
	if requiredLevel <= VerbosityStandard {
		priority = journal.PriNotice
	}
	_ = journal.Send(message, priority, map[string]string{"SYSLOG_IDENTIFIER": "grist"})
}
