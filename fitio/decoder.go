package fitio

import (
	"encoding/hex"
	"fmt"

	"github.com/lucasjlepore/fitcore/fitproto"
	"github.com/lucasjlepore/fitcore/fitxdata"
)

const (
	headerCompressedBit         = 0x80
	headerCompressedLocalIDMask = 0x60
	headerCompressedTimeMask    = 0x1F
	headerDefinitionBit         = 0x40
	headerDeveloperBit          = 0x20
	headerLocalIDMask           = 0x0F
)

// FieldDefinition is one field entry of a MessageDefinition: its FIT field
// number, resolved symbolic name, encoded byte size, and type code.
// TypeCode is a FIT base type id (≤255) for native fields, or
// devDataOffset+ddi for a developer field.
type FieldDefinition struct {
	Number   uint8
	Name     string
	Size     uint8
	TypeCode uint16
}

// MessageDefinition describes the field layout registered for one local
// message id. Receiving a new definition for an already-used local id
// replaces it.
type MessageDefinition struct {
	GlobalID   uint16
	GlobalName string
	BigEndian  bool
	Fields     []FieldDefinition
}

// recordHeader is the decoded form of one record header byte.
type recordHeader struct {
	Compressed   bool
	IsDefinition bool
	Developer    bool
	LocalID      uint8
	TimeOffset   uint8
}

func decodeHeaderByte(b byte) (recordHeader, error) {
	if b&headerCompressedBit != 0 {
		return recordHeader{
			Compressed: true,
			LocalID:    (b & headerCompressedLocalIDMask) >> 5,
			TimeOffset: b & headerCompressedTimeMask,
		}, nil
	}
	h := recordHeader{
		IsDefinition: b&headerDefinitionBit != 0,
		Developer:    b&headerDeveloperBit != 0,
		LocalID:      b & headerLocalIDMask,
	}
	if h.Developer && !h.IsDefinition {
		return recordHeader{}, fmt.Errorf("%w: developer bit set on a data record header", ErrBadHeaderByte)
	}
	return h, nil
}

// Consumer receives one decoded data-record Message at a time.
type Consumer func(*Message) error

// Decoder consumes bytes from a Reader, interprets record headers,
// maintains a table of local-id to message-definition, decodes each data
// record into an ordered sequence of (field-name, value) pairs, and
// dispatches them to a Consumer.
type Decoder struct {
	r      *Reader
	tables StaticTables
	xdata  *fitxdata.Registry
	defs   map[uint8]*MessageDefinition
}

// NewDecoder constructs a Decoder reading from r. A nil tables argument
// falls back to NewDefaultTables; a nil registry gets a fresh
// fitxdata.Registry (pass one explicitly to share XDATA state, e.g. a
// stable key cache, across files from the same device).
func NewDecoder(r *Reader, tables StaticTables, registry *fitxdata.Registry) *Decoder {
	if tables == nil {
		tables = NewDefaultTables()
	}
	if registry == nil {
		registry = fitxdata.New()
	}
	return &Decoder{
		r:      r,
		tables: tables,
		xdata:  registry,
		defs:   map[uint8]*MessageDefinition{},
	}
}

// Run decodes every record in the stream, feeding each decoded data-record
// Message to consume. It stops at the first error, including one returned
// by consume itself.
func (d *Decoder) Run(consume Consumer) error {
	for !d.r.IsEOF() {
		headerByte, err := d.r.ReadByte()
		if err != nil {
			return err
		}
		h, err := decodeHeaderByte(headerByte)
		if err != nil {
			return err
		}

		if h.Compressed {
			msg, err := d.decodeDataRecord(h.LocalID, &h)
			if err != nil {
				return err
			}
			if err := consume(msg); err != nil {
				return err
			}
			continue
		}

		if h.IsDefinition {
			if err := d.decodeDefinitionRecord(h.LocalID, h.Developer); err != nil {
				return err
			}
			continue
		}

		msg, err := d.decodeDataRecord(h.LocalID, nil)
		if err != nil {
			return err
		}
		if err := consume(msg); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) nameForField(globalName string, fieldNumber uint8) string {
	if name, ok := d.tables.FieldName(globalName, fieldNumber); ok {
		return name
	}
	if name, ok := d.tables.CommonFieldName(fieldNumber); ok {
		return name
	}
	return fmt.Sprintf("field_%d", fieldNumber)
}

func (d *Decoder) decodeDefinitionRecord(localID uint8, developer bool) error {
	if _, err := d.r.ReadByte(); err != nil { // reserved
		return err
	}
	archByte, err := d.r.ReadByte()
	if err != nil {
		return err
	}
	bigEndian := archByte != 0

	globalRaw, err := d.r.ReadRawUint(2, bigEndian)
	if err != nil {
		return err
	}
	globalID := uint16(globalRaw)
	globalName, _ := d.tables.GlobalName(globalID)

	fieldCount, err := d.r.ReadByte()
	if err != nil {
		return err
	}

	def := &MessageDefinition{GlobalID: globalID, GlobalName: globalName, BigEndian: bigEndian}
	for i := 0; i < int(fieldCount); i++ {
		num, err := d.r.ReadByte()
		if err != nil {
			return err
		}
		size, err := d.r.ReadByte()
		if err != nil {
			return err
		}
		typeCode, err := d.r.ReadByte()
		if err != nil {
			return err
		}
		def.Fields = append(def.Fields, FieldDefinition{
			Number:   num,
			Name:     d.nameForField(globalName, num),
			Size:     size,
			TypeCode: uint16(typeCode),
		})
	}

	if developer {
		devCount, err := d.r.ReadByte()
		if err != nil {
			return err
		}
		for i := 0; i < int(devCount); i++ {
			num, err := d.r.ReadByte()
			if err != nil {
				return err
			}
			size, err := d.r.ReadByte()
			if err != nil {
				return err
			}
			ddi, err := d.r.ReadByte()
			if err != nil {
				return err
			}
			def.Fields = append(def.Fields, FieldDefinition{
				Number:   num,
				Name:     fmt.Sprintf("field_%d", num),
				Size:     size,
				TypeCode: fitxdata.DevDataOffset + uint16(ddi),
			})
		}
	}

	d.defs[localID] = def
	return nil
}

func (d *Decoder) decodeDataRecord(localID uint8, ch *recordHeader) (*Message, error) {
	def, ok := d.defs[localID]
	if !ok {
		return nil, fmt.Errorf("%w: local id %d", ErrUnknownMessageDefinition, localID)
	}

	msg := &Message{GlobalID: def.GlobalID, GlobalName: def.GlobalName, LocalID: localID}
	for _, fd := range def.Fields {
		name, value, err := d.readField(def, fd)
		if err != nil {
			return nil, err
		}
		if value == nil {
			continue
		}
		msg.Append(name, value)
	}

	if ch != nil {
		msg.Append("compressed_timestamp", uint32(ch.TimeOffset))
	}

	switch def.GlobalName {
	case "developer_data_id":
		d.applyDeveloperDataID(msg)
	case "field_description":
		d.applyFieldDescription(msg)
	}

	return msg, nil
}

func (d *Decoder) readField(def *MessageDefinition, fd FieldDefinition) (string, any, error) {
	if fd.TypeCode >= fitxdata.DevDataOffset {
		return d.readDeveloperField(def, fd)
	}
	t, ok := fitproto.Lookup(byte(fd.TypeCode))
	if !ok {
		return "", nil, fmt.Errorf("%w: code %d", fitproto.ErrUnknownBaseType, fd.TypeCode)
	}
	raw, err := d.r.ReadNext(t, int(fd.Size), def.BigEndian)
	if err != nil {
		return "", nil, err
	}
	return fd.Name, d.applyConversion(def.GlobalName, fd.Name, raw), nil
}

func (d *Decoder) readDeveloperField(def *MessageDefinition, fd FieldDefinition) (string, any, error) {
	ft, ok := d.xdata.Lookup(fd.TypeCode, fd.Number)
	if !ok {
		return "", nil, fmt.Errorf("%w: code %d field %d", ErrUnknownDevField, fd.TypeCode, fd.Number)
	}
	raw, err := d.r.ReadNext(ft.Base, int(fd.Size), def.BigEndian)
	if err != nil {
		return "", nil, err
	}
	return ft.StableKey, raw, nil
}

func (d *Decoder) applyConversion(globalName, fieldName string, v any) any {
	conv, ok := d.tables.Conversion(globalName, fieldName)
	if !ok || v == nil {
		return v
	}
	if vec, ok := v.([]any); ok {
		out := make([]any, len(vec))
		for i, e := range vec {
			if e == nil {
				continue
			}
			out[i] = conv(e)
		}
		return out
	}
	return conv(v)
}

func (d *Decoder) applyDeveloperDataID(msg *Message) {
	if v, ok := msg.Get("developer_id"); ok {
		if hexStr, ok := bytesHexFromVector(v); ok {
			msg.RemoveName("developer_id")
			msg.Append("developer_id", hexStr)
		}
	}

	ddiVal, _ := msg.Get("developer_data_index")
	ddi, haveDDI := toUint8(ddiVal)

	if v, ok := msg.Get("application_id"); ok {
		if hexStr, ok := bytesHexFromVector(v); ok {
			msg.RemoveName("application_id")
			msg.Append("application_id", hexStr)
			if haveDDI {
				d.xdata.RecordApplication(ddi, hexStr)
			}
		}
	}
}

func (d *Decoder) applyFieldDescription(msg *Message) {
	ddiVal, _ := msg.Get("developer_data_index")
	ddi, ok := toUint8(ddiVal)
	if !ok {
		return
	}
	fieldNumVal, _ := msg.Get("field_definition_number")
	fieldNum, ok := toUint8(fieldNumVal)
	if !ok {
		return
	}
	baseTypeVal, _ := msg.Get("fit_base_type_id")
	baseTypeID, ok := toUint8(baseTypeVal)
	if !ok {
		return
	}
	baseType, ok := fitproto.Lookup(baseTypeID)
	if !ok {
		return
	}
	nameVal, _ := msg.Get("field_name")
	name, _ := nameVal.(string)

	ft := d.xdata.Register(ddi, fieldNum, name, baseType)
	msg.Append("field_key", ft.StableKey)
}

func bytesHexFromVector(v any) (string, bool) {
	vec, ok := v.([]any)
	if !ok {
		return "", false
	}
	raw := make([]byte, len(vec))
	for i, e := range vec {
		if e == nil {
			continue
		}
		if b, ok := e.(uint8); ok {
			raw[i] = b
		}
	}
	return hex.EncodeToString(raw), true
}

func toUint8(v any) (uint8, bool) {
	switch n := v.(type) {
	case uint8:
		return n, true
	case uint16:
		return uint8(n), true
	case uint32:
		return uint8(n), true
	case int8:
		return uint8(n), true
	case int16:
		return uint8(n), true
	case int32:
		return uint8(n), true
	default:
		return 0, false
	}
}
