package ppk

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Parse reads a PPK v2 or v3 file's textual structure. It does not decrypt
// the private blob or verify the MAC; call Decrypt for that.
func Parse(data []byte) (*File, error) {
	lines := splitLines(string(data))
	if len(lines) == 0 {
		return nil, &ParseError{Reason: "empty file"}
	}

	version, algorithm, ok := parseHeaderLine(lines[0])
	if !ok {
		return nil, &ParseError{Reason: "missing PuTTY-User-Key-File header"}
	}

	file := &File{Version: version, Algorithm: algorithm}
	idx := 1

	for idx < len(lines) {
		line := lines[idx]
		switch {
		case strings.HasPrefix(line, "Encryption:"):
			file.Encryption = strings.TrimSpace(strings.TrimPrefix(line, "Encryption:"))
			idx++
		case strings.HasPrefix(line, "Comment:"):
			file.Comment = strings.TrimSpace(strings.TrimPrefix(line, "Comment:"))
			idx++
		case strings.HasPrefix(line, "Key-Derivation:"):
			file.Argon2Variant = strings.TrimSpace(strings.TrimPrefix(line, "Key-Derivation:"))
			idx++
		case strings.HasPrefix(line, "Argon2-Memory:"):
			v, _ := strconv.ParseUint(strings.TrimSpace(strings.TrimPrefix(line, "Argon2-Memory:")), 10, 32)
			file.Argon2MemoryKiB = uint32(v)
			idx++
		case strings.HasPrefix(line, "Argon2-Passes:"):
			v, _ := strconv.ParseUint(strings.TrimSpace(strings.TrimPrefix(line, "Argon2-Passes:")), 10, 32)
			file.Argon2Passes = uint32(v)
			idx++
		case strings.HasPrefix(line, "Argon2-Parallelism:"):
			v, _ := strconv.ParseUint(strings.TrimSpace(strings.TrimPrefix(line, "Argon2-Parallelism:")), 10, 32)
			file.Argon2Parallelism = uint32(v)
			idx++
		case strings.HasPrefix(line, "Argon2-Salt:"):
			hexSalt := strings.TrimSpace(strings.TrimPrefix(line, "Argon2-Salt:"))
			salt, err := hex.DecodeString(hexSalt)
			if err != nil {
				return nil, &ParseError{Reason: "invalid Argon2-Salt hex: " + err.Error()}
			}
			file.Argon2Salt = salt
			idx++
		case strings.HasPrefix(line, "Public-Lines:"):
			count, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Public-Lines:")))
			if err != nil {
				return nil, &ParseError{Reason: "invalid Public-Lines count"}
			}
			idx++
			blob, next, err := readBase64Block(lines, idx, count)
			if err != nil {
				return nil, err
			}
			file.PublicBlob = blob
			idx = next
		case strings.HasPrefix(line, "Private-Lines:"):
			count, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Private-Lines:")))
			if err != nil {
				return nil, &ParseError{Reason: "invalid Private-Lines count"}
			}
			idx++
			blob, next, err := readBase64Block(lines, idx, count)
			if err != nil {
				return nil, err
			}
			file.PrivateBlob = blob
			idx = next
		case strings.HasPrefix(line, "Private-MAC:"):
			hexMAC := strings.TrimSpace(strings.TrimPrefix(line, "Private-MAC:"))
			mac, err := hex.DecodeString(hexMAC)
			if err != nil {
				return nil, &ParseError{Reason: "invalid Private-MAC hex: " + err.Error()}
			}
			file.PrivateMAC = mac
			idx++
		default:
			idx++
		}
	}

	if file.PublicBlob == nil || file.PrivateBlob == nil || file.PrivateMAC == nil {
		return nil, &ParseError{Reason: "missing public/private blob or MAC"}
	}

	return file, nil
}

func parseHeaderLine(line string) (version int, algorithm string, ok bool) {
	for _, n := range []int{2, 3} {
		prefix := fmt.Sprintf("PuTTY-User-Key-File-%d:", n)
		if strings.HasPrefix(line, prefix) {
			return n, strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	return 0, "", false
}

func readBase64Block(lines []string, start, count int) ([]byte, int, error) {
	if start+count > len(lines) {
		return nil, 0, &ParseError{Reason: "truncated base64 block"}
	}
	var joined strings.Builder
	for i := 0; i < count; i++ {
		joined.WriteString(strings.TrimSpace(lines[start+i]))
	}
	blob, err := base64.StdEncoding.DecodeString(joined.String())
	if err != nil {
		return nil, 0, &ParseError{Reason: "invalid base64 block: " + err.Error()}
	}
	return blob, start + count, nil
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	// Drop a single trailing empty line left by a final newline.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
