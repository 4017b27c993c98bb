package fitproto

import "testing"

func TestReadWriteIntRoundTrip(t *testing.T) {
	cases := []struct {
		width  int
		signed bool
		value  int64
	}{
		{1, true, -5},
		{1, false, 200},
		{2, true, -12345},
		{4, true, -1234567},
		{4, false, 4000000000},
	}
	for _, c := range cases {
		buf := make([]byte, 8)
		if _, err := WriteInt(buf, 0, c.width, c.signed, false, c.value); err != nil {
			t.Fatalf("WriteInt(%v): %v", c, err)
		}
		got, _, err := ReadInt(buf, 0, c.width, c.signed, false)
		if err != nil {
			t.Fatalf("ReadInt(%v): %v", c, err)
		}
		if got != c.value {
			t.Fatalf("round trip mismatch for %v: got %d", c, got)
		}
	}
}

func TestReadIntOutOfBounds(t *testing.T) {
	buf := make([]byte, 2)
	if _, _, err := ReadInt(buf, 1, 4, true, false); err != ErrOutOfBounds {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestReadWriteFloatRoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	if _, err := WriteFloat(buf, 0, 8, true, 3.5); err != nil {
		t.Fatalf("WriteFloat: %v", err)
	}
	got, _, err := ReadFloat(buf, 0, 8, true)
	if err != nil {
		t.Fatalf("ReadFloat: %v", err)
	}
	if got != 3.5 {
		t.Fatalf("expected 3.5, got %v", got)
	}
}

func TestReadOneInvalidSentinelYieldsNoValue(t *testing.T) {
	buf := []byte{0xFF}
	v, _, err := ReadOne(buf, 0, Uint8, false)
	if err != nil {
		t.Fatalf("ReadOne: %v", err)
	}
	if v != nil {
		t.Fatalf("expected no value, got %v", v)
	}
}

func TestReadOneScalar(t *testing.T) {
	buf := []byte{0x2A}
	v, _, err := ReadOne(buf, 0, Uint8, false)
	if err != nil {
		t.Fatalf("ReadOne: %v", err)
	}
	if v != uint8(0x2A) {
		t.Fatalf("expected 0x2A, got %v", v)
	}
}

func TestReadManyVectorWithPartialInvalid(t *testing.T) {
	buf := []byte{0x01, 0xFF, 0x03}
	v, _, err := ReadMany(buf, 0, 3, Uint8, false)
	if err != nil {
		t.Fatalf("ReadMany: %v", err)
	}
	vec, ok := v.([]any)
	if !ok || len(vec) != 3 {
		t.Fatalf("expected 3-element vector, got %v", v)
	}
	if vec[0] != uint8(1) || vec[1] != nil || vec[2] != uint8(3) {
		t.Fatalf("unexpected vector contents: %v", vec)
	}
}

func TestReadManyString(t *testing.T) {
	buf := []byte{'h', 'i', 0, 'X'}
	v, newPos, err := ReadMany(buf, 0, 4, String, false)
	if err != nil {
		t.Fatalf("ReadMany: %v", err)
	}
	if v != "hi" {
		t.Fatalf("expected %q, got %v", "hi", v)
	}
	if newPos != 4 {
		t.Fatalf("expected newPos 4, got %d", newPos)
	}
}

func TestCRC16OfFinalisedBufferIsZero(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	crc := CRC16(buf)
	buf = append(buf, byte(crc), byte(crc>>8))
	if CRC16(buf) != 0 {
		t.Fatalf("expected CRC16 of self-checksummed buffer to be 0, got %#04x", CRC16(buf))
	}
}
