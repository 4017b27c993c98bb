package fitwrite

import "github.com/lucasjlepore/fitcore/fitproto"

// FieldSpec describes one field of an outgoing message definition: its
// FIT field number, name (used only to look the value up in the data map
// passed to PutMessage), base type, and element count (1 for a scalar).
type FieldSpec struct {
	Number uint8
	Name   string
	Type   fitproto.Type
	Count  int
}

// size is the on-wire byte size of this field: count * type width.
func (f FieldSpec) size() uint8 {
	n := f.Count
	if n <= 0 {
		n = 1
	}
	return uint8(n * f.Type.Width)
}

// MessageDefinition is the writer-side layout of one global message: the
// local id its data records will reference, the byte order its fields are
// written in, and the ordered field list.
type MessageDefinition struct {
	GlobalID  uint16
	LocalID   uint8
	BigEndian bool
	Fields    []FieldSpec
}
