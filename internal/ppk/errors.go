package ppk

import "fmt"

// InvalidPassphraseError is returned whenever a MAC or checkint comparison
// fails after decryption, regardless of which layer detected it.
type InvalidPassphraseError struct{}

func (e *InvalidPassphraseError) Error() string {
	return "invalid passphrase"
}

// ParseError reports malformed or unrecognised PPK file structure.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed PPK file: %s", e.Reason)
}

// UnsupportedAlgorithmError reports an algorithm this converter cannot emit.
type UnsupportedAlgorithmError struct {
	Algorithm string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported key algorithm: %s", e.Algorithm)
}

// UnsupportedKDFError reports a recognised but unimplementable KDF variant
// (Argon2d, which golang.org/x/crypto/argon2 does not expose), distinct
// from InvalidPassphraseError so callers don't mistake it for a wrong
// passphrase.
type UnsupportedKDFError struct {
	Variant string
}

func (e *UnsupportedKDFError) Error() string {
	return fmt.Sprintf("unsupported Argon2 KDF variant: %s", e.Variant)
}
