// Package fitproto implements the FIT binary primitives: the byte codec,
// the fourteen-type registry, and the file CRC. Everything above the byte
// level (headers, records, definitions) lives in fitio.
package fitproto

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrOutOfBounds is returned by every codec operation when pos+width would
// run past the end of the supplied buffer.
var ErrOutOfBounds = errors.New("fitproto: position out of bounds")

func byteOrder(bigEndian bool) binary.ByteOrder {
	if bigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// ReadUint reads a width-byte unsigned integer at pos in the given
// endianness and returns it along with the position past the read.
func ReadUint(buf []byte, pos, width int, bigEndian bool) (uint64, int, error) {
	if pos < 0 || width <= 0 || pos+width > len(buf) {
		return 0, pos, ErrOutOfBounds
	}
	switch width {
	case 1:
		return uint64(buf[pos]), pos + 1, nil
	case 2:
		return uint64(byteOrder(bigEndian).Uint16(buf[pos : pos+2])), pos + 2, nil
	case 4:
		return uint64(byteOrder(bigEndian).Uint32(buf[pos : pos+4])), pos + 4, nil
	case 8:
		return byteOrder(bigEndian).Uint64(buf[pos : pos+8]), pos + 8, nil
	default:
		return 0, pos, ErrOutOfBounds
	}
}

// WriteUint writes a width-byte unsigned integer at pos and returns the
// position past the write.
func WriteUint(buf []byte, pos, width int, bigEndian bool, v uint64) (int, error) {
	if pos < 0 || width <= 0 || pos+width > len(buf) {
		return pos, ErrOutOfBounds
	}
	switch width {
	case 1:
		buf[pos] = byte(v)
		return pos + 1, nil
	case 2:
		byteOrder(bigEndian).PutUint16(buf[pos:pos+2], uint16(v))
		return pos + 2, nil
	case 4:
		byteOrder(bigEndian).PutUint32(buf[pos:pos+4], uint32(v))
		return pos + 4, nil
	case 8:
		byteOrder(bigEndian).PutUint64(buf[pos:pos+8], v)
		return pos + 8, nil
	default:
		return pos, ErrOutOfBounds
	}
}

// ReadInt reads a signed or unsigned integer of the given width. Width 1 is
// handled specially: the byte is fetched directly, and if signed with the
// top bit set, sign-extended by subtracting 256 rather than relying on a
// generic two's-complement cast.
func ReadInt(buf []byte, pos, width int, signed, bigEndian bool) (int64, int, error) {
	raw, newPos, err := ReadUint(buf, pos, width, bigEndian)
	if err != nil {
		return 0, pos, err
	}
	if !signed {
		return int64(raw), newPos, nil
	}
	if width == 1 {
		v := int64(raw)
		if v&0x80 != 0 {
			v -= 256
		}
		return v, newPos, nil
	}
	switch width {
	case 2:
		return int64(int16(raw)), newPos, nil
	case 4:
		return int64(int32(raw)), newPos, nil
	case 8:
		return int64(raw), newPos, nil
	default:
		return 0, pos, ErrOutOfBounds
	}
}

// WriteInt is the symmetric counterpart of ReadInt. Width 1 stores the byte
// directly, including the two's-complement bit pattern for negative values.
func WriteInt(buf []byte, pos, width int, signed, bigEndian bool, value int64) (int, error) {
	var raw uint64
	if width == 1 {
		raw = uint64(byte(value))
	} else {
		raw = uint64(value)
	}
	return WriteUint(buf, pos, width, bigEndian, raw)
}

// ReadFloat reads a 4- or 8-byte IEEE-754 float at pos.
func ReadFloat(buf []byte, pos, width int, bigEndian bool) (float64, int, error) {
	raw, newPos, err := ReadUint(buf, pos, width, bigEndian)
	if err != nil {
		return 0, pos, err
	}
	switch width {
	case 4:
		return float64(math.Float32frombits(uint32(raw))), newPos, nil
	case 8:
		return math.Float64frombits(raw), newPos, nil
	default:
		return 0, pos, ErrOutOfBounds
	}
}

// WriteFloat is the symmetric counterpart of ReadFloat.
func WriteFloat(buf []byte, pos, width int, bigEndian bool, value float64) (int, error) {
	var raw uint64
	switch width {
	case 4:
		raw = uint64(math.Float32bits(float32(value)))
	case 8:
		raw = math.Float64bits(value)
	default:
		return pos, ErrOutOfBounds
	}
	return WriteUint(buf, pos, width, bigEndian, raw)
}
