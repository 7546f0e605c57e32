package ppk

import (
	"os"
	"runtime"
)

// ConvertFile reads a PPK file from disk, decrypts its private blob with
// passphrase (empty when the file is unencrypted), and returns PEM bytes
// for an openssh-key-v1 file re-protected with outPassphrase (empty for
// plaintext output).
func ConvertFile(sourcePath string, passphrase, outPassphrase []byte) ([]byte, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, err
	}

	file, err := Parse(data)
	if err != nil {
		return nil, err
	}

	decrypted, err := Decrypt(file, passphrase)
	if err != nil {
		return nil, err
	}

	return ConvertToOpenSSH(file, decrypted, outPassphrase)
}

// WriteOpenSSHKey writes pemBytes to destPath with mode 0600 (on unix;
// Windows ACLs are left to the filesystem default, matching the source's
// own platform split).
func WriteOpenSSHKey(destPath string, pemBytes []byte) error {
	if runtime.GOOS == "windows" {
		return os.WriteFile(destPath, pemBytes, 0o644)
	}
	return os.WriteFile(destPath, pemBytes, 0o600)
}
