// Package ppk parses PuTTY private key files (v2 and v3) and converts them
// to OpenSSH's openssh-key-v1 format.
package ppk

// File is a parsed PPK file, before decryption.
type File struct {
	Version    int
	Algorithm  string
	Encryption string
	Comment    string

	// v3 only.
	Argon2Variant      string
	Argon2MemoryKiB    uint32
	Argon2Passes       uint32
	Argon2Parallelism  uint32
	Argon2Salt         []byte

	PublicBlob  []byte
	PrivateBlob []byte // still encrypted if Encryption != "none"
	PrivateMAC  []byte
}

// IsEncrypted reports whether the private blob requires a passphrase.
func (f *File) IsEncrypted() bool {
	return f.Encryption != "none" && f.Encryption != ""
}
