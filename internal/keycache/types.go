// Package keycache holds verified key passphrases in memory, sealed under a
// per-process key, for the lifetime of the process, so a user unlocks a
// passphrase-protected key once per session rather than on every git
// invocation that needs it.
package keycache

import "time"

// entry is one cached key: a sealed passphrase kept only long enough to
// re-derive the decrypted key material on demand, plus the path to a
// materialised plaintext copy once one has been written.
type entry struct {
	sealedPassphrase []byte // nonce || ciphertext, sealed with the process key
	materialisedPath string
	unlockedAt       time.Time
}

// Status summarises one cached key's state for callers without exposing
// key material.
type Status struct {
	KeyPath      string `json:"key_path"`
	Unlocked     bool   `json:"unlocked"`
	NeedsUnlock  bool   `json:"needs_unlock"`
	Materialised bool   `json:"materialised"`
}
