package fitexport

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{
	"timestamp_utc", "elapsed_s", "power_w", "hr_bpm", "cadence_rpm",
	"speed_mps", "distance_m", "altitude_m", "temperature_c", "grade_pct",
	"valid_power", "valid_hr", "valid_cadence", "record_index",
}

// WriteCSV writes samples to w in the canonical column order, one header
// row followed by one row per sample.
func WriteCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatUint(uint64(s.TimestampUTC), 10),
			formatFloat(s.ElapsedS),
			formatFloat(s.PowerW),
			formatFloat(s.HRBPM),
			formatFloat(s.CadenceRPM),
			formatFloat(s.SpeedMPS),
			formatFloat(s.DistanceM),
			formatFloat(s.AltitudeM),
			formatFloat(s.TemperatureC),
			formatFloat(s.GradePct),
			strconv.FormatBool(s.ValidPower),
			strconv.FormatBool(s.ValidHR),
			strconv.FormatBool(s.ValidCadence),
			strconv.FormatInt(s.RecordIndex, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
