package fitwrite

import "github.com/lucasjlepore/fitcore/fitproto"

const preambleLocalID uint8 = 0

var fileIDDef = MessageDefinition{
	GlobalID: 0,
	LocalID:  preambleLocalID,
	Fields: []FieldSpec{
		{Number: 0, Name: "type", Type: fitproto.Enum},
		{Number: 1, Name: "manufacturer", Type: fitproto.Uint16},
		{Number: 2, Name: "product", Type: fitproto.Uint16},
		{Number: 3, Name: "serial_number", Type: fitproto.Uint32z},
		{Number: 4, Name: "time_created", Type: fitproto.Uint32},
		{Number: 5, Name: "number", Type: fitproto.Uint16},
	},
}

var fileCreatorDef = MessageDefinition{
	GlobalID: 49,
	LocalID:  preambleLocalID,
	Fields: []FieldSpec{
		{Number: 0, Name: "software_version", Type: fitproto.Uint16},
		{Number: 1, Name: "hardware_version", Type: fitproto.Uint8},
	},
}

// FilePreamble holds the two messages every specialised writer emits first:
// file-id (global 0) and file-creator (global 49), both on local-id 0 and
// never redefined for the life of the file.
type FilePreamble struct {
	FileType        uint8
	Manufacturer    uint16
	Product         uint16
	SerialNumber    uint32
	TimeCreated     uint32
	Number          uint16
	SoftwareVersion uint16
	HardwareVersion uint8
}

// writePreamble emits the fixed file-id/file-creator pair; every
// specialised writer calls it first thing in its Finalise.
func writePreamble(w *Writer, p FilePreamble) error {
	if err := w.PutDefinition(fileIDDef); err != nil {
		return err
	}
	if err := w.PutMessage(0, map[string]any{
		"type":          p.FileType,
		"manufacturer":  p.Manufacturer,
		"product":       p.Product,
		"serial_number": p.SerialNumber,
		"time_created":  p.TimeCreated,
		"number":        p.Number,
	}); err != nil {
		return err
	}

	if err := w.PutDefinition(fileCreatorDef); err != nil {
		return err
	}
	return w.PutMessage(49, map[string]any{
		"software_version": p.SoftwareVersion,
		"hardware_version": p.HardwareVersion,
	})
}
