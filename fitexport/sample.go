// Package fitexport flattens a decoded Activity's trackpoints into tabular
// rows and writes them out as CSV or Parquet, the way the teacher's
// pipeline package turns decoded FIT records into canonical samples.
package fitexport

import "github.com/lucasjlepore/fitcore/fitcore"

// Sample is one flattened trackpoint: the common sensor fields a rider or
// runner cares about. Power, heart rate and cadence carry a validity flag
// distinguishing "elided as invalid on read" from "legitimately zero"; the
// other sensor fields have no flag and read 0 when absent.
type Sample struct {
	TimestampUTC uint32
	ElapsedS     float64
	PowerW       float64
	HRBPM        float64
	CadenceRPM   float64
	SpeedMPS     float64
	DistanceM    float64
	AltitudeM    float64
	TemperatureC float64
	GradePct     float64

	ValidPower   bool
	ValidHR      bool
	ValidCadence bool

	RecordIndex int64
}

// Flatten walks every session/lap/length/record of activity in order and
// produces one Sample per track record.
func Flatten(activity *fitcore.Activity) []Sample {
	out := make([]Sample, 0, 4096)
	var idx int64
	var startTS uint32
	first := true

	for _, session := range activity.Sessions {
		for _, lap := range session.Laps {
			for _, length := range lap.Lengths {
				for _, rec := range length.Records {
					s := Sample{RecordIndex: idx}
					idx++

					if v, ok := rec.Fields.Get("timestamp"); ok {
						if n, ok := toUint32(v); ok {
							s.TimestampUTC = n
							if first {
								startTS = n
								first = false
							}
							s.ElapsedS = float64(n) - float64(startTS)
						}
					}
					if v, ok := rec.Fields.Get("power"); ok {
						if f, ok := toFloat(v); ok {
							s.PowerW = f
							s.ValidPower = true
						}
					}
					if v, ok := rec.Fields.Get("heart_rate"); ok {
						if f, ok := toFloat(v); ok {
							s.HRBPM = f
							s.ValidHR = true
						}
					}
					if v, ok := rec.Fields.Get("cadence"); ok {
						if f, ok := toFloat(v); ok {
							s.CadenceRPM = f
							s.ValidCadence = true
						}
					}
					if v, ok := rec.Fields.Get("speed"); ok {
						if f, ok := toFloat(v); ok {
							s.SpeedMPS = f
						}
					}
					if v, ok := rec.Fields.Get("distance"); ok {
						if f, ok := toFloat(v); ok {
							s.DistanceM = f
						}
					}
					if v, ok := rec.Fields.Get("altitude"); ok {
						if f, ok := toFloat(v); ok {
							s.AltitudeM = f
						}
					}
					if v, ok := rec.Fields.Get("temperature"); ok {
						if f, ok := toFloat(v); ok {
							s.TemperatureC = f
						}
					}
					if v, ok := rec.Fields.Get("grade"); ok {
						if f, ok := toFloat(v); ok {
							s.GradePct = f
						}
					}

					out = append(out, s)
				}
			}
		}
	}
	return out
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

func toUint32(v any) (uint32, bool) {
	switch n := v.(type) {
	case uint8:
		return uint32(n), true
	case uint16:
		return uint32(n), true
	case uint32:
		return n, true
	default:
		return 0, false
	}
}
