package fitio

import (
	"testing"

	"github.com/lucasjlepore/fitcore/fitproto"
)

// buildMinimalFile constructs the spec's minimal-file fixture: a 14-byte
// header (with header CRC) and a 0-byte data section, trailed by the
// whole-file CRC.
func buildMinimalFile(t *testing.T) []byte {
	t.Helper()
	buf := make([]byte, 16)
	buf[0] = 14  // header length
	buf[1] = 16  // protocol version
	// profile version (u16 LE) at [2:4] left as 1322
	buf[2] = 0x2A
	buf[3] = 0x05
	// data length (u32 LE) at [4:8] = 0
	copy(buf[8:12], ".FIT")
	headerCRC := fitproto.CRC16(buf[:12])
	buf[12] = byte(headerCRC)
	buf[13] = byte(headerCRC >> 8)

	fileCRC := fitproto.CRC16(buf[:14])
	buf[14] = byte(fileCRC)
	buf[15] = byte(fileCRC >> 8)
	return buf
}

func TestNewReaderAcceptsMinimalFile(t *testing.T) {
	data := buildMinimalFile(t)
	r, err := NewReader(data)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if !r.IsEOF() {
		t.Fatal("expected is_eof() immediately after initialisation")
	}
}

func TestNewReaderRejectsBadSignature(t *testing.T) {
	data := buildMinimalFile(t)
	data[8] = 'X'
	headerCRC := fitproto.CRC16(data[:12])
	data[12] = byte(headerCRC)
	data[13] = byte(headerCRC >> 8)
	fileCRC := fitproto.CRC16(data[:14])
	data[14] = byte(fileCRC)
	data[15] = byte(fileCRC >> 8)

	if _, err := NewReader(data); err == nil {
		t.Fatal("expected an error for a missing .FIT signature")
	}
}

func TestNewReaderRejectsBadCRC(t *testing.T) {
	data := buildMinimalFile(t)
	data[14] ^= 0xFF
	if _, err := NewReader(data); err == nil {
		t.Fatal("expected ErrBadCRC")
	}
}

func TestNewReaderAcceptsTrailingChunk(t *testing.T) {
	data := buildMinimalFile(t)
	data = append(data, 0xAA, 0xBB) // a second, unread chained chunk
	r, err := NewReader(data)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if !r.IsEOF() {
		t.Fatal("expected is_eof() true: the logical window excludes the trailing chunk")
	}
}
