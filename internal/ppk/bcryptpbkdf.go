package ppk

import (
	"crypto/sha512"
	"encoding/binary"

	"golang.org/x/crypto/blowfish"
)

// bcryptPBKDFBlockSize is the size of one bcrypt_hash output block.
const bcryptPBKDFBlockSize = 32

// magicPlaintext is "OxychromaticBlowfishSwatDynamite", the fixed public
// plaintext bcrypt_pbkdf encrypts repeatedly in its inner hash.
var magicPlaintext = [bcryptPBKDFBlockSize]byte{
	'O', 'x', 'y', 'c', 'h', 'r', 'o', 'm',
	'a', 't', 'i', 'c', 'B', 'l', 'o', 'w',
	'f', 'i', 's', 'h', 'S', 'w', 'a', 't',
	'D', 'y', 'n', 'a', 'm', 'i', 't', 'e',
}

// bcryptPBKDF derives keyLen bytes of key material from password and salt
// over the given round count — the construction OpenSSH uses to protect
// new-format private keys (see PROTOCOL.key, and OpenBSD's
// bcrypt_pbkdf.c). Each output block is produced by bcryptHash, XORed
// across rounds, and the blocks are interleaved (not concatenated) into
// the final key, matching bcrypt_pbkdf's own non-linear output ordering.
func bcryptPBKDF(password, salt []byte, rounds, keyLen int) ([]byte, error) {
	if rounds < 1 {
		rounds = 1
	}

	passwordHash := sha512.Sum512(password)

	stride := (keyLen + bcryptPBKDFBlockSize - 1) / bcryptPBKDFBlockSize
	amt := (keyLen + stride - 1) / stride

	out := make([]byte, keyLen)

	for block := 0; block < stride; block++ {
		var countBuf [4]byte
		binary.BigEndian.PutUint32(countBuf[:], uint32(block+1))

		saltHash := sha512.New()
		saltHash.Write(salt)
		saltHash.Write(countBuf[:])
		runningSalt := saltHash.Sum(nil)

		tmpOut, err := bcryptHash(passwordHash[:], runningSalt)
		if err != nil {
			return nil, err
		}
		accumulated := append([]byte(nil), tmpOut...)

		for r := 1; r < rounds; r++ {
			nextSaltHash := sha512.Sum512(tmpOut)
			tmpOut, err = bcryptHash(passwordHash[:], nextSaltHash[:])
			if err != nil {
				return nil, err
			}
			for i := range accumulated {
				accumulated[i] ^= tmpOut[i]
			}
		}

		for i := 0; i < amt; i++ {
			dest := i*stride + block
			if dest >= keyLen {
				break
			}
			out[dest] = accumulated[i]
		}
	}

	return out, nil
}

// bcryptHash is bcrypt_pbkdf's inner "eksblowfish" hash: key the cipher
// from both sha2pass and sha2salt (the same EksBlowfishSetup step bcrypt's
// own password hash uses, via blowfish.NewSaltedCipher), then run 64
// rounds of key-only re-expansion alternating salt and password — the
// step golang.org/x/crypto/blowfish exposes as the exported ExpandKey,
// not reachable through NewSaltedCipher alone — before encrypting the
// fixed magic plaintext 64 times in a chain and swapping each output word
// to little-endian.
func bcryptHash(sha2pass, sha2salt []byte) ([]byte, error) {
	cipher, err := blowfish.NewSaltedCipher(sha2pass, sha2salt)
	if err != nil {
		return nil, err
	}
	for i := 0; i < 64; i++ {
		blowfish.ExpandKey(sha2salt, cipher)
		blowfish.ExpandKey(sha2pass, cipher)
	}

	var words [8]uint32
	for i := range words {
		words[i] = binary.BigEndian.Uint32(magicPlaintext[i*4 : i*4+4])
	}

	var block [8]byte
	for round := 0; round < 64; round++ {
		for i := 0; i < len(words); i += 2 {
			binary.BigEndian.PutUint32(block[0:4], words[i])
			binary.BigEndian.PutUint32(block[4:8], words[i+1])
			cipher.Encrypt(block[:], block[:])
			words[i] = binary.BigEndian.Uint32(block[0:4])
			words[i+1] = binary.BigEndian.Uint32(block[4:8])
		}
	}

	out := make([]byte, bcryptPBKDFBlockSize)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:i*4+4], w)
	}
	return out, nil
}
