package fitio

import (
	"fmt"

	"github.com/lucasjlepore/fitcore/fitproto"
)

// Reader owns the raw file bytes and a logical read window. It validates
// the FIT header and full-file CRC on construction, then exposes a single
// positional "read next value" operation to the record decoder.
type Reader struct {
	buf        []byte
	pos        int
	windowEnd  int
	headerSize int
}

// NewReader validates data as a complete FIT file and returns a Reader
// positioned at the start of its logical data window.
//
// NewReader fails with ErrBadHeader if the header is malformed, ErrBadCRC
// if the whole-file CRC does not checksum to 0, and ErrTruncatedData if the
// buffer is shorter than the header promises.
func NewReader(data []byte) (*Reader, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("%w: buffer too short for a header", ErrBadHeader)
	}

	headerSize := int(data[0])
	if headerSize < 12 {
		return nil, fmt.Errorf("%w: header length %d < 12", ErrBadHeader, headerSize)
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: buffer shorter than header length", ErrTruncatedData)
	}
	if string(data[8:12]) != ".FIT" {
		return nil, fmt.Errorf("%w: missing .FIT signature", ErrBadHeader)
	}

	dataLength, _, err := fitproto.ReadUint(data, 4, 4, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}

	total := headerSize + int(dataLength) + 2
	if len(data) < total {
		return nil, fmt.Errorf("%w: buffer length %d shorter than header+data+crc %d", ErrTruncatedData, len(data), total)
	}

	if fitproto.CRC16(data[:total]) != 0 {
		return nil, fmt.Errorf("%w: whole-file crc nonzero", ErrBadCRC)
	}

	return &Reader{
		buf:        data,
		pos:        headerSize,
		windowEnd:  headerSize + int(dataLength),
		headerSize: headerSize,
	}, nil
}

// IsEOF reports whether the logical read window has been fully consumed.
func (r *Reader) IsEOF() bool {
	return r.pos >= r.windowEnd
}

// Position returns the current cursor position within the underlying
// buffer.
func (r *Reader) Position() int {
	return r.pos
}

// ReadByte reads one raw, structural byte (a record header, reserved byte,
// architecture byte, or count) without invalid-sentinel elision.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= r.windowEnd {
		return 0, ErrReadPastEnd
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadRaw reads n structural bytes verbatim, advancing the cursor.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	if r.pos+n > r.windowEnd {
		return nil, ErrReadPastEnd
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

// ReadRawUint reads a width-byte unsigned integer verbatim, without
// invalid-sentinel elision. Structural fields (counts, global message
// numbers, field triples) use this rather than ReadNext, since a
// structural value of e.g. 0xFFFF is not "missing data".
func (r *Reader) ReadRawUint(width int, bigEndian bool) (uint64, error) {
	if r.pos+width > r.windowEnd {
		return 0, ErrReadPastEnd
	}
	v, newPos, err := fitproto.ReadUint(r.buf, r.pos, width, bigEndian)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrReadPastEnd, err)
	}
	r.pos = newPos
	return v, nil
}

// ReadNext reads a FIT-typed value of size bytes (size defaults to t.Width
// when 0) at the current position, applying invalid-sentinel elision, and
// advances the cursor.
func (r *Reader) ReadNext(t fitproto.Type, size int, bigEndian bool) (any, error) {
	if size <= 0 {
		size = t.Width
	}
	if r.pos+size > r.windowEnd {
		return nil, ErrReadPastEnd
	}
	v, newPos, err := fitproto.ReadMany(r.buf, r.pos, size, t, bigEndian)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadPastEnd, err)
	}
	r.pos = newPos
	return v, nil
}
