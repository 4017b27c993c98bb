package fitio

import "fmt"

// ConversionFunc is a scalar-to-scalar conversion applied element-wise
// during decoding, e.g. scaling a raw integer into a physical unit.
type ConversionFunc func(v any) any

// StaticTables is the read-only, process-wide configuration the record
// decoder and event dispatcher consult to turn numeric identifiers into
// symbols and to apply per-field unit conversions. It is treated as opaque
// configuration data owned by the application; fitio ships a default
// implementation covering the message kinds the activity builder
// understands, but callers may substitute their own.
type StaticTables interface {
	// GlobalName resolves a global message number to its symbolic name.
	GlobalName(globalID uint16) (string, bool)
	// FieldName resolves a field number within a named message to its
	// symbolic name.
	FieldName(globalName string, fieldNumber uint8) (string, bool)
	// CommonFieldName resolves a field number that is reserved across
	// nearly every message kind (e.g. 253 = timestamp, 254 = message_index).
	CommonFieldName(fieldNumber uint8) (string, bool)
	// Conversion resolves the conversion function for a named field within
	// a named message, if one is registered.
	Conversion(globalName, fieldName string) (ConversionFunc, bool)
}

type fieldEntry struct {
	name       string
	conversion ConversionFunc
}

// DefaultTables is a StaticTables implementation grounded on common FIT
// profile message/field semantics. It is deliberately small: it covers the
// message kinds the activity builder dispatches on directly, and falls
// back to a numeric "field_<n>" / "global_<n>" name for anything else.
type DefaultTables struct {
	globals map[uint16]string
	fields  map[string]map[uint8]fieldEntry
	common  map[uint8]string
}

// NewDefaultTables builds the default static table set.
func NewDefaultTables() *DefaultTables {
	t := &DefaultTables{
		globals: map[uint16]string{
			0:   "file_id",
			15:  "training_file",
			18:  "session",
			19:  "lap",
			20:  "record",
			21:  "event",
			23:  "device_info",
			26:  "workout",
			27:  "workout_step",
			29:  "sport",
			34:  "activity",
			49:  "file_creator",
			101: "length",
			140: "hrv",
			206: "field_description",
			207: "developer_data_id",
		},
		common: map[uint8]string{
			253: "timestamp",
			254: "message_index",
		},
		fields: map[string]map[uint8]fieldEntry{},
	}

	t.fields["file_id"] = map[uint8]fieldEntry{
		0: {name: "type"},
		1: {name: "manufacturer"},
		2: {name: "product"},
		3: {name: "serial_number"},
		4: {name: "time_created"},
		5: {name: "number"},
		8: {name: "product_name"},
	}
	t.fields["session"] = map[uint8]fieldEntry{
		2:  {name: "start_time"},
		5:  {name: "sport"},
		6:  {name: "sub_sport"},
		7:  {name: "total_elapsed_time", conversion: scaleBy(1000, 0)},
		8:  {name: "total_timer_time", conversion: scaleBy(1000, 0)},
		9:  {name: "total_distance", conversion: scaleBy(100, 0)},
		14: {name: "avg_speed", conversion: scaleBy(1000, 0)},
		15: {name: "max_speed", conversion: scaleBy(1000, 0)},
		16: {name: "avg_heart_rate"},
		17: {name: "max_heart_rate"},
		18: {name: "avg_cadence"},
		19: {name: "max_cadence"},
		20: {name: "avg_power"},
		21: {name: "max_power"},
		24: {name: "total_calories"},
		44: {name: "pool_length", conversion: scaleBy(100, 0)},
		46: {name: "pool_length_unit"},
		48: {name: "normalized_power"},
		57: {name: "threshold_power"},
	}
	t.fields["lap"] = map[uint8]fieldEntry{
		2:  {name: "start_time"},
		7:  {name: "total_elapsed_time", conversion: scaleBy(1000, 0)},
		8:  {name: "total_timer_time", conversion: scaleBy(1000, 0)},
		9:  {name: "total_distance", conversion: scaleBy(100, 0)},
		13: {name: "avg_speed", conversion: scaleBy(1000, 0)},
		14: {name: "max_speed", conversion: scaleBy(1000, 0)},
		15: {name: "avg_heart_rate"},
		16: {name: "max_heart_rate"},
		17: {name: "avg_cadence"},
		18: {name: "max_cadence"},
		19: {name: "avg_power"},
		20: {name: "max_power"},
		32: {name: "length_type"},
		42: {name: "total_work"},
		87: {name: "total_strokes"},
		91: {name: "avg_swimming_cadence"},
	}
	t.fields["record"] = map[uint8]fieldEntry{
		0:  {name: "position_lat", conversion: semicirclesToDegrees},
		1:  {name: "position_long", conversion: semicirclesToDegrees},
		2:  {name: "altitude", conversion: scaleBy(5, -500)},
		3:  {name: "heart_rate"},
		4:  {name: "cadence"},
		5:  {name: "distance", conversion: scaleBy(100, 0)},
		6:  {name: "speed", conversion: scaleBy(1000, 0)},
		7:  {name: "power"},
		9:  {name: "grade", conversion: scaleBy(100, 0)},
		13: {name: "temperature"},
		18: {name: "resistance"},
		30: {name: "left_right_balance"},
		31: {name: "gps_accuracy"},
		41: {name: "total_strokes"},
		53: {name: "fractional_cadence", conversion: scaleBy(128, 0)},
	}
	t.fields["event"] = map[uint8]fieldEntry{
		0: {name: "event"},
		1: {name: "event_type"},
		3: {name: "data"},
		4: {name: "event_group"},
	}
	t.fields["device_info"] = map[uint8]fieldEntry{
		0: {name: "device_index"},
		1: {name: "device_type"},
		2: {name: "manufacturer"},
		3: {name: "serial_number"},
		4: {name: "product"},
		5: {name: "software_version"},
	}
	t.fields["workout"] = map[uint8]fieldEntry{
		4: {name: "wkt_name"},
		5: {name: "sport"},
		6: {name: "sub_sport"},
		7: {name: "num_valid_steps"},
	}
	t.fields["workout_step"] = map[uint8]fieldEntry{
		0: {name: "wkt_step_name"},
		1: {name: "duration_type"},
		2: {name: "duration_value"},
		3: {name: "target_type"},
		4: {name: "target_value"},
	}
	t.fields["sport"] = map[uint8]fieldEntry{
		0: {name: "sport"},
		1: {name: "sub_sport"},
	}
	t.fields["length"] = map[uint8]fieldEntry{
		2:  {name: "start_time"},
		3:  {name: "total_elapsed_time", conversion: scaleBy(1000, 0)},
		4:  {name: "total_timer_time", conversion: scaleBy(1000, 0)},
		5:  {name: "length_type"},
		10: {name: "total_strokes"},
	}
	t.fields["developer_data_id"] = map[uint8]fieldEntry{
		0: {name: "developer_id"},
		1: {name: "application_id"},
		2: {name: "manufacturer_id"},
		3: {name: "developer_data_index"},
		4: {name: "application_version"},
	}
	t.fields["field_description"] = map[uint8]fieldEntry{
		0: {name: "developer_data_index"},
		1: {name: "field_definition_number"},
		2: {name: "fit_base_type_id"},
		3: {name: "field_name"},
		6: {name: "native_mesg_num"},
		7: {name: "native_field_num"},
		8: {name: "units"},
	}
	t.fields["training_file"] = map[uint8]fieldEntry{
		3: {name: "type"},
		4: {name: "manufacturer"},
		5: {name: "product"},
	}
	t.fields["hrv"] = map[uint8]fieldEntry{
		0: {name: "time"},
	}

	return t
}

func (t *DefaultTables) GlobalName(globalID uint16) (string, bool) {
	name, ok := t.globals[globalID]
	if !ok {
		return fmt.Sprintf("global_%d", globalID), false
	}
	return name, true
}

func (t *DefaultTables) FieldName(globalName string, fieldNumber uint8) (string, bool) {
	if m, ok := t.fields[globalName]; ok {
		if e, ok := m[fieldNumber]; ok {
			return e.name, true
		}
	}
	return fmt.Sprintf("field_%d", fieldNumber), false
}

func (t *DefaultTables) CommonFieldName(fieldNumber uint8) (string, bool) {
	name, ok := t.common[fieldNumber]
	return name, ok
}

func (t *DefaultTables) Conversion(globalName, fieldName string) (ConversionFunc, bool) {
	m, ok := t.fields[globalName]
	if !ok {
		return nil, false
	}
	for _, e := range m {
		if e.name == fieldName && e.conversion != nil {
			return e.conversion, true
		}
	}
	return nil, false
}

func scaleBy(scale, offset float64) ConversionFunc {
	return func(v any) any {
		f, ok := toFloat(v)
		if !ok {
			return v
		}
		return f/scale + offset
	}
}

// semicirclesToDegrees converts a FIT semicircle position value (an int32
// covering the full circle in 2^31 units) into degrees.
func semicirclesToDegrees(v any) any {
	f, ok := toFloat(v)
	if !ok {
		return v
	}
	const semicircleToDeg = 180.0 / 2147483648.0
	return f * semicircleToDeg
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	default:
		return 0, false
	}
}
