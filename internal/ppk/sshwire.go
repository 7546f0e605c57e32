package ppk

import (
	"encoding/binary"
	"fmt"
)

// sshReader walks a buffer reading length-prefixed ssh-string/ssh-blob
// fields (u32 big-endian length, then that many bytes) and raw u32s, the
// wire format shared by PPK MAC input and OpenSSH key blobs.
type sshReader struct {
	buf []byte
	pos int
}

func newSSHReader(buf []byte) *sshReader {
	return &sshReader{buf: buf}
}

func (r *sshReader) readString() ([]byte, error) {
	if r.pos+4 > len(r.buf) {
		return nil, fmt.Errorf("ppk: truncated length prefix")
	}
	n := binary.BigEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	if r.pos+int(n) > len(r.buf) {
		return nil, fmt.Errorf("ppk: truncated string field")
	}
	out := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return out, nil
}

func (r *sshReader) readUint32() (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, fmt.Errorf("ppk: truncated uint32 field")
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

func (r *sshReader) remaining() []byte {
	return r.buf[r.pos:]
}

// sshWriter appends length-prefixed fields in the same wire format.
type sshWriter struct {
	buf []byte
}

func (w *sshWriter) writeString(b []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	w.buf = append(w.buf, lenBuf[:]...)
	w.buf = append(w.buf, b...)
}

func (w *sshWriter) writeUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *sshWriter) bytes() []byte {
	return w.buf
}

// sshString builds one ssh-string(b) field in isolation, used when
// assembling the HMAC input message.
func sshString(b []byte) []byte {
	var w sshWriter
	w.writeString(b)
	return w.bytes()
}
