// Package fitxdata resolves developer-data application IDs and
// field-description messages into the stable string keys used when
// emitting developer ("XDATA") field values.
package fitxdata

import (
	"fmt"

	"github.com/lucasjlepore/fitcore/fitproto"
)

// DevDataOffset is added to a developer-data index to form the artificial
// type code the record decoder uses to distinguish developer fields from
// the ≤255 FIT base types.
const DevDataOffset = 1000

// Key identifies one developer field definition by its artificial type
// code (DevDataOffset+ddi) and its FIT field number.
type Key struct {
	Code   uint16
	Number uint8
}

// FieldType is what a Key resolves to: the stable string key a decoded
// value is emitted under, and the true FIT base type it was declared with.
type FieldType struct {
	StableKey string
	Base      fitproto.Type
}

// Registry is the mutable mapping the record decoder consults to resolve
// developer fields. It is owned by the application and handed to the
// decoder (fitio.NewDecoder) rather than being a package-level global,
// and Reset is an explicit operation the owner calls in place of the
// source's "flush on database-open notification" semantics.
type Registry struct {
	appDefs map[uint8]string
	fields  map[Key]FieldType
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		appDefs: map[uint8]string{},
		fields:  map[Key]FieldType{},
	}
}

// Reset discards every recorded application id and field definition,
// returning the registry to its post-New state.
func (r *Registry) Reset() {
	r.appDefs = map[uint8]string{}
	r.fields = map[Key]FieldType{}
}

// RecordApplication associates a developer-data index with the lowercase
// hex application guid read from a developer_data_id message.
func (r *Registry) RecordApplication(ddi uint8, guidHex string) {
	r.appDefs[ddi] = guidHex
}

// ApplicationGUID returns the guid recorded for ddi, if any.
func (r *Registry) ApplicationGUID(ddi uint8) (string, bool) {
	guid, ok := r.appDefs[ddi]
	return guid, ok
}

// Register computes the §4.8 stable key for a field_description message
// (developer-data-index d, field-def-number n, raw field name) and stores
// it alongside base, the field's true FIT base type. The stable key is
// "<application-guid>-<n>" when the application id for d is known,
// otherwise the field name itself.
func (r *Registry) Register(ddi, fieldNum uint8, name string, base fitproto.Type) FieldType {
	key := name
	if guid, ok := r.appDefs[ddi]; ok {
		key = fmt.Sprintf("%s-%d", guid, fieldNum)
	}
	ft := FieldType{StableKey: key, Base: base}
	r.fields[Key{Code: DevDataOffset + uint16(ddi), Number: fieldNum}] = ft
	return ft
}

// Lookup resolves a developer field's artificial type code and field
// number to its stable key and true base type.
func (r *Registry) Lookup(code uint16, number uint8) (FieldType, bool) {
	ft, ok := r.fields[Key{Code: code, Number: number}]
	return ft, ok
}
