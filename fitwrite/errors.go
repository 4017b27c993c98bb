// Package fitwrite implements the FIT writer core: a growing-buffer
// encoder that tracks message definitions and produces a finalised,
// CRC-checked .FIT file.
package fitwrite

import "errors"

// ErrNoDefinition is returned by PutMessage when no prior PutDefinition
// registered the global message's layout.
var ErrNoDefinition = errors.New("fitwrite: no definition registered for this global message")

// ErrUnknownBaseType names an unknown base type. No writer operation
// returns it: a FieldSpec carries a fitproto.Type value, not a type id.
var ErrUnknownBaseType = errors.New("fitwrite: unknown base type")
