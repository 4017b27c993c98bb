package fitio

import (
	"testing"

	"github.com/lucasjlepore/fitcore/fitproto"
)

// buildFileIDFile wraps a single file_id definition+data record pair (type
// = workout file, manufacturer = 1, product = 65534) in a valid FIT
// envelope, mirroring the round-trip scenario spec.md §8 describes for the
// writer's file-id preamble.
func buildFileIDFile(t *testing.T) []byte {
	t.Helper()

	var body []byte
	body = append(body, 0x40) // definition, local id 0
	body = append(body, 0)    // reserved
	body = append(body, 0)    // architecture: little-endian
	body = append(body, 0, 0) // global message number 0 (file_id), LE
	body = append(body, 3)    // field count
	body = append(body, 0, 1, byte(fitproto.Enum.ID))
	body = append(body, 1, 2, byte(fitproto.Uint16.ID))
	body = append(body, 2, 2, byte(fitproto.Uint16.ID))

	body = append(body, 0x00) // data, local id 0
	body = append(body, 5)    // type = 5 (workout file)
	body = append(body, 1, 0) // manufacturer = 1, LE
	body = append(body, 0xFE, 0xFF) // product = 65534, LE

	header := make([]byte, 12)
	header[0] = 12
	header[1] = 16
	header[2] = 0
	header[3] = 0
	header[4] = byte(len(body))
	header[5] = byte(len(body) >> 8)
	header[6] = byte(len(body) >> 16)
	header[7] = byte(len(body) >> 24)
	copy(header[8:12], ".FIT")

	buf := append(header, body...)
	crc := fitproto.CRC16(buf)
	buf = append(buf, byte(crc), byte(crc>>8))
	return buf
}

func TestDecoderDecodesFileID(t *testing.T) {
	data := buildFileIDFile(t)
	r, err := NewReader(data)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	dec := NewDecoder(r, nil, nil)

	var got *Message
	err = dec.Run(func(m *Message) error {
		got = m
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got == nil {
		t.Fatal("expected one decoded message")
	}
	if got.GlobalName != "file_id" {
		t.Fatalf("expected global name file_id, got %q", got.GlobalName)
	}
	typ, ok := got.Get("type")
	if !ok || typ != uint8(5) {
		t.Fatalf("expected type=5, got %v (ok=%v)", typ, ok)
	}
	manufacturer, _ := got.Get("manufacturer")
	if manufacturer != uint16(1) {
		t.Fatalf("expected manufacturer=1, got %v", manufacturer)
	}
	product, _ := got.Get("product")
	if product != uint16(65534) {
		t.Fatalf("expected product=65534, got %v", product)
	}
}

func TestDecoderReplacesDefinitionOnRedefine(t *testing.T) {
	var body []byte
	// First definition: local id 0, field 0 is a uint8 "type".
	body = append(body, 0x40, 0, 0, 0, 0, 1, 0, 1, byte(fitproto.Uint8.ID))
	body = append(body, 0x00, 7) // data under first definition: type=7

	// Redefine local id 0: now global message 20 (record), field 3 heart_rate uint8.
	body = append(body, 0x40, 0, 0, 20, 0, 1, 3, 1, byte(fitproto.Uint8.ID))
	body = append(body, 0x00, 150) // data under second definition: heart_rate=150

	header := make([]byte, 12)
	header[0] = 12
	header[1] = 16
	header[4] = byte(len(body))
	header[5] = byte(len(body) >> 8)
	copy(header[8:12], ".FIT")
	buf := append(header, body...)
	crc := fitproto.CRC16(buf)
	buf = append(buf, byte(crc), byte(crc>>8))

	r, err := NewReader(buf)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	dec := NewDecoder(r, nil, nil)

	var messages []*Message
	if err := dec.Run(func(m *Message) error {
		messages = append(messages, m)
		return nil
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(messages) != 2 {
		t.Fatalf("expected 2 data records, got %d", len(messages))
	}
	if messages[0].GlobalName != "file_id" {
		t.Fatalf("expected first record under file_id, got %q", messages[0].GlobalName)
	}
	if messages[1].GlobalName != "record" {
		t.Fatalf("expected second record under the redefined local id to be record, got %q", messages[1].GlobalName)
	}
	hr, _ := messages[1].Get("heart_rate")
	if hr != uint8(150) {
		t.Fatalf("expected heart_rate=150, got %v", hr)
	}
}

func TestDecoderUnknownLocalIDFails(t *testing.T) {
	header := make([]byte, 12)
	header[0] = 12
	header[1] = 16
	header[4] = 1
	copy(header[8:12], ".FIT")
	buf := append(header, 0x03) // data record for an undefined local id 3
	crc := fitproto.CRC16(buf)
	buf = append(buf, byte(crc), byte(crc>>8))

	r, err := NewReader(buf)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	dec := NewDecoder(r, nil, nil)
	err = dec.Run(func(*Message) error { return nil })
	if err == nil {
		t.Fatal("expected ErrUnknownMessageDefinition")
	}
}
