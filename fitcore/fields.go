package fitcore

import "github.com/lucasjlepore/fitcore/fitio"

// powerPhaseFields are the two-element [start, end] vector fields that
// the pedal-power-phase derived rule converts into degrees. Each entry in
// the vector is a fraction of a full pedal stroke in 256ths; multiplying
// by 360/256 yields degrees.
var powerPhaseFields = []string{
	"left_power_phase", "right_power_phase",
	"avg_left_power_phase", "avg_right_power_phase",
	"left_power_phase_peak", "right_power_phase_peak",
	"avg_left_power_phase_peak", "avg_right_power_phase_peak",
}

// processFields applies the derived-field rules before a session, lap,
// length, or record is stored. Each rule names a target symbol and a
// function over the record; the resulting value is prepended under the
// target name, and any existing entries under that same target name are
// removed first. The fields a rule reads from are left untouched.
func processFields(msg *fitio.Message) {
	applyRule(msg, "start_time", fallbackRule("start_time", "timestamp"))
	applyRule(msg, "cadence", cadenceFusionRule([]string{"cadence"}, "fractional_cadence"))
	applyRule(msg, "avg_cadence", cadenceFusionRule([]string{"avg_swimming_cadence", "avg_cadence"}, "avg_fractional_cadence"))
	applyRule(msg, "max_cadence", cadenceFusionRule([]string{"max_cadence"}, "max_fractional_cadence"))
	applyRule(msg, "total_cycles", fallbackRule("total_cycles", "total_strokes"))
	applyRule(msg, "left_right_balance", fallbackRule("left_right_balance", "stance_time_balance"))

	for _, field := range powerPhaseFields {
		applyPowerPhaseRule(msg, field)
	}
}

type fieldRule func(msg *fitio.Message) (any, bool)

func applyRule(msg *fitio.Message, target string, rule fieldRule) {
	value, ok := rule(msg)
	msg.RemoveName(target)
	if ok {
		msg.Prepend(fitio.Field{Name: target, Value: value})
	}
}

func fallbackRule(candidates ...string) fieldRule {
	return func(msg *fitio.Message) (any, bool) {
		for _, c := range candidates {
			if v, ok := msg.Get(c); ok {
				return v, true
			}
		}
		return nil, false
	}
}

func cadenceFusionRule(baseCandidates []string, fractional string) fieldRule {
	return func(msg *fitio.Message) (any, bool) {
		var base any
		found := false
		for _, c := range baseCandidates {
			if v, ok := msg.Get(c); ok {
				base = v
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
		baseF, baseOK := toFloat(base)
		fracVal, hasFrac := msg.Get(fractional)
		if baseOK && hasFrac {
			if fracF, ok := toFloat(fracVal); ok {
				return baseF + fracF, true
			}
		}
		return base, true
	}
}

const powerPhaseToDegrees = 360.0 / 256.0

func applyPowerPhaseRule(msg *fitio.Message, field string) {
	startTarget := field + "_start"
	endTarget := field + "_end"

	v, ok := msg.Get(field)
	msg.RemoveName(startTarget)
	msg.RemoveName(endTarget)
	if !ok {
		return
	}
	vec, ok := v.([]any)
	if !ok || len(vec) < 2 {
		return
	}
	if f, ok := toFloat(vec[0]); ok {
		msg.Prepend(fitio.Field{Name: startTarget, Value: f * powerPhaseToDegrees})
	}
	if f, ok := toFloat(vec[1]); ok {
		msg.Prepend(fitio.Field{Name: endTarget, Value: f * powerPhaseToDegrees})
	}
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
	case int64:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
