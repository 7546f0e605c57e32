package ppk

import (
	"encoding/binary"
)

// VerifyOpenSSHPassphrase checks passphrase against an already-encrypted
// openssh-key-v1 file without writing the decrypted key to disk, by
// decrypting the private section in memory and requiring the two checkint
// halves to match.
func VerifyOpenSSHPassphrase(data, passphrase []byte) error {
	_, err := decryptOpenSSHPrivateSection(data, passphrase)
	return err
}

// DecryptOpenSSHKeyToPlaintext decrypts an already-encrypted openssh-key-v1
// file and re-wraps the result as an unencrypted openssh-key-v1 PEM,
// suitable for materialising to a temporary file.
func DecryptOpenSSHKeyToPlaintext(data, passphrase []byte) ([]byte, error) {
	decoded, err := decodeOpenSSHBody(data)
	if err != nil {
		return nil, err
	}
	reader := newSSHReader(decoded[len(opensshMagic):])

	if _, err := reader.readString(); err != nil { // cipher
		return nil, err
	}
	if _, err := reader.readString(); err != nil { // kdf
		return nil, err
	}
	if _, err := reader.readString(); err != nil { // kdf options
		return nil, err
	}
	if _, err := reader.readUint32(); err != nil { // num keys
		return nil, err
	}
	publicKey, err := reader.readString()
	if err != nil {
		return nil, err
	}

	decryptedPrivate, err := decryptOpenSSHPrivateSection(data, passphrase)
	if err != nil {
		return nil, err
	}

	var out sshWriter
	out.buf = append(out.buf, []byte(opensshMagic)...)
	out.writeString([]byte("none"))
	out.writeString([]byte("none"))
	out.writeString(nil)
	out.writeUint32(1)
	out.writeString(publicKey)
	out.writeString(decryptedPrivate)

	return wrapPEM(out.bytes()), nil
}

// decryptOpenSSHPrivateSection is the shared core of passphrase
// verification and plaintext materialisation: it decrypts the private
// section and confirms the leading checkint pair matches, returning
// InvalidPassphraseError otherwise. An unencrypted file's private section
// is returned unchanged (passphrase is never consulted).
func decryptOpenSSHPrivateSection(data, passphrase []byte) ([]byte, error) {
	decoded, err := decodeOpenSSHBody(data)
	if err != nil {
		return nil, err
	}
	reader := newSSHReader(decoded[len(opensshMagic):])

	cipherName, err := reader.readString()
	if err != nil {
		return nil, err
	}
	kdfName, err := reader.readString()
	if err != nil {
		return nil, err
	}
	kdfOptions, err := reader.readString()
	if err != nil {
		return nil, err
	}
	if _, err := reader.readUint32(); err != nil { // num keys
		return nil, err
	}
	if _, err := reader.readString(); err != nil { // public key
		return nil, err
	}
	encryptedPrivate, err := reader.readString()
	if err != nil {
		return nil, err
	}

	if string(cipherName) == "none" {
		return encryptedPrivate, nil
	}
	if string(kdfName) != "bcrypt" {
		return nil, &ParseError{Reason: "unsupported OpenSSH KDF: " + string(kdfName)}
	}

	optsReader := newSSHReader(kdfOptions)
	salt, err := optsReader.readString()
	if err != nil {
		return nil, err
	}
	rounds, err := optsReader.readUint32()
	if err != nil {
		return nil, err
	}

	keyIV, err := bcryptPBKDF(passphrase, salt, int(rounds), 48)
	if err != nil {
		return nil, err
	}

	decrypted, err := aesCTR(keyIV[:32], keyIV[32:48], encryptedPrivate)
	if err != nil {
		return nil, err
	}

	if len(decrypted) < 8 {
		return nil, &InvalidPassphraseError{}
	}
	check1 := binary.BigEndian.Uint32(decrypted[0:4])
	check2 := binary.BigEndian.Uint32(decrypted[4:8])
	if check1 != check2 {
		return nil, &InvalidPassphraseError{}
	}

	return decrypted, nil
}
