package fitwrite

import "github.com/lucasjlepore/fitcore/fitproto"

const (
	zonesTargetLocalID uint8 = 1
	sportLocalID       uint8 = 2
	hrZoneLocalID      uint8 = 3
	powerZoneLocalID   uint8 = 4
	speedZoneLocalID   uint8 = 5
)

var zonesTargetDef = MessageDefinition{
	GlobalID: 7,
	LocalID:  zonesTargetLocalID,
	Fields: []FieldSpec{
		{Number: 1, Name: "max_heart_rate", Type: fitproto.Uint8},
		{Number: 2, Name: "threshold_heart_rate", Type: fitproto.Uint8},
		{Number: 3, Name: "functional_threshold_power", Type: fitproto.Uint16},
		{Number: 5, Name: "hr_calc_type", Type: fitproto.Enum},
		{Number: 7, Name: "pwr_calc_type", Type: fitproto.Enum},
	},
}

// sportDef deliberately reuses global 29, matching fitio's DefaultTables
// mapping for "sport" so a file this writer produces round-trips through
// this module's own reader.
var sportDef = MessageDefinition{
	GlobalID: 29,
	LocalID:  sportLocalID,
	Fields: []FieldSpec{
		{Number: 0, Name: "sport", Type: fitproto.Enum},
		{Number: 1, Name: "sub_sport", Type: fitproto.Enum},
	},
}

var hrZoneDef = MessageDefinition{
	GlobalID: 8,
	LocalID:  hrZoneLocalID,
	Fields: []FieldSpec{
		{Number: 254, Name: "message_index", Type: fitproto.Uint16},
		{Number: 1, Name: "high_bpm", Type: fitproto.Uint8},
	},
}

var powerZoneDef = MessageDefinition{
	GlobalID: 9,
	LocalID:  powerZoneLocalID,
	Fields: []FieldSpec{
		{Number: 254, Name: "message_index", Type: fitproto.Uint16},
		{Number: 1, Name: "high_value", Type: fitproto.Uint16},
	},
}

var speedZoneDef = MessageDefinition{
	GlobalID: 53,
	LocalID:  speedZoneLocalID,
	Fields: []FieldSpec{
		{Number: 254, Name: "message_index", Type: fitproto.Uint16},
		{Number: 0, Name: "high_value", Type: fitproto.Uint16},
	},
}

// ZonesTarget is the global-7 preamble: max/threshold heart rate,
// functional threshold power, and which calculation mode each zone table
// uses (percent-of-max vs. percent-of-threshold).
type ZonesTarget struct {
	MaxHeartRate       uint8
	ThresholdHeartRate uint8
	FTP                uint16
	HRCalcType         uint8
	PowerCalcType      uint8
}

// SportWriter builds a sport file (file-type 3): a zones-target preamble,
// the active sport/sub-sport, and optional HR/power/speed zone tables.
type SportWriter struct {
	w          *Writer
	preamble   FilePreamble
	zones      ZonesTarget
	sport      uint8
	subSport   uint8
	hrZones    []uint8
	powerZones []uint16
	speedZones []float64 // m/s; written as mm/s
}

// NewSportWriter returns a SportWriter with the preamble queued for
// emission at Finalise.
func NewSportWriter(preamble FilePreamble, zones ZonesTarget, sport, subSport uint8) *SportWriter {
	preamble.FileType = 3
	return &SportWriter{w: NewWriter(false), preamble: preamble, zones: zones, sport: sport, subSport: subSport}
}

// SetHeartRateZones installs the optional global-8 heart-rate zone table.
func (sw *SportWriter) SetHeartRateZones(highBPM []uint8) { sw.hrZones = highBPM }

// SetPowerZones installs the optional global-9 power zone table.
func (sw *SportWriter) SetPowerZones(highWatts []uint16) { sw.powerZones = highWatts }

// SetSpeedZones installs the optional global-53 speed zone table, in m/s;
// each value is multiplied by 1000 and rounded before it is written.
func (sw *SportWriter) SetSpeedZones(highMetersPerSecond []float64) { sw.speedZones = highMetersPerSecond }

func (sw *SportWriter) Finalise() ([]byte, error) {
	if err := writePreamble(sw.w, sw.preamble); err != nil {
		return nil, err
	}

	if err := sw.w.PutDefinition(zonesTargetDef); err != nil {
		return nil, err
	}
	if err := sw.w.PutMessage(7, map[string]any{
		"max_heart_rate":             sw.zones.MaxHeartRate,
		"threshold_heart_rate":       sw.zones.ThresholdHeartRate,
		"functional_threshold_power": sw.zones.FTP,
		"hr_calc_type":               sw.zones.HRCalcType,
		"pwr_calc_type":              sw.zones.PowerCalcType,
	}); err != nil {
		return nil, err
	}

	if err := sw.w.PutDefinition(sportDef); err != nil {
		return nil, err
	}
	if err := sw.w.PutMessage(29, map[string]any{
		"sport":     sw.sport,
		"sub_sport": sw.subSport,
	}); err != nil {
		return nil, err
	}

	if len(sw.hrZones) > 0 {
		if err := sw.w.PutDefinition(hrZoneDef); err != nil {
			return nil, err
		}
		for i, v := range sw.hrZones {
			if err := sw.w.PutMessage(8, map[string]any{
				"message_index": uint16(i),
				"high_bpm":      v,
			}); err != nil {
				return nil, err
			}
		}
	}

	if len(sw.powerZones) > 0 {
		if err := sw.w.PutDefinition(powerZoneDef); err != nil {
			return nil, err
		}
		for i, v := range sw.powerZones {
			if err := sw.w.PutMessage(9, map[string]any{
				"message_index": uint16(i),
				"high_value":    v,
			}); err != nil {
				return nil, err
			}
		}
	}

	if len(sw.speedZones) > 0 {
		if err := sw.w.PutDefinition(speedZoneDef); err != nil {
			return nil, err
		}
		for i, v := range sw.speedZones {
			if err := sw.w.PutMessage(53, map[string]any{
				"message_index": uint16(i),
				"high_value":    uint16(v*1000 + 0.5),
			}); err != nil {
				return nil, err
			}
		}
	}

	return sw.w.Finalise(), nil
}
