package fitio

import "errors"

// Error kinds surfaced by the stream reader and record decoder. All are
// fatal to the current file: decoding aborts immediately and no partial
// activity is returned.
var (
	ErrBadHeader              = errors.New("fitio: bad header")
	ErrBadCRC                 = errors.New("fitio: bad crc")
	ErrTruncatedData          = errors.New("fitio: truncated data")
	ErrReadPastEnd            = errors.New("fitio: read past end")
	ErrUnknownMessageDefinition = errors.New("fitio: unknown message definition")
	ErrUnknownDevField        = errors.New("fitio: unknown developer field")
	ErrBadHeaderByte          = errors.New("fitio: bad record header byte")
)
