package fitexport

import (
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// sampleParquetRow is the on-disk row shape for WriteParquet, grounded on
// the teacher's canonicalParquetRow: one physical column per Sample field,
// validity flags carried alongside rather than encoded as nulls.
type sampleParquetRow struct {
	TimestampUTC int64   `parquet:"name=timestamp_utc, type=INT64"`
	ElapsedS     float64 `parquet:"name=elapsed_s, type=DOUBLE"`
	PowerW       float64 `parquet:"name=power_w, type=DOUBLE"`
	HRBPM        float64 `parquet:"name=hr_bpm, type=DOUBLE"`
	CadenceRPM   float64 `parquet:"name=cadence_rpm, type=DOUBLE"`
	SpeedMPS     float64 `parquet:"name=speed_mps, type=DOUBLE"`
	DistanceM    float64 `parquet:"name=distance_m, type=DOUBLE"`
	AltitudeM    float64 `parquet:"name=altitude_m, type=DOUBLE"`
	TemperatureC float64 `parquet:"name=temperature_c, type=DOUBLE"`
	GradePct     float64 `parquet:"name=grade_pct, type=DOUBLE"`
	ValidPower   bool    `parquet:"name=valid_power, type=BOOLEAN"`
	ValidHR      bool    `parquet:"name=valid_hr, type=BOOLEAN"`
	ValidCadence bool    `parquet:"name=valid_cadence, type=BOOLEAN"`
	RecordIndex  int64   `parquet:"name=record_index, type=INT64"`
}

// WriteParquet writes samples to a new Snappy-compressed Parquet file at
// path.
func WriteParquet(path string, samples []Sample) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(sampleParquetRow), 4)
	if err != nil {
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, s := range samples {
		row := sampleParquetRow{
			TimestampUTC: int64(s.TimestampUTC),
			ElapsedS:     s.ElapsedS,
			PowerW:       s.PowerW,
			HRBPM:        s.HRBPM,
			CadenceRPM:   s.CadenceRPM,
			SpeedMPS:     s.SpeedMPS,
			DistanceM:    s.DistanceM,
			AltitudeM:    s.AltitudeM,
			TemperatureC: s.TemperatureC,
			GradePct:     s.GradePct,
			ValidPower:   s.ValidPower,
			ValidHR:      s.ValidHR,
			ValidCadence: s.ValidCadence,
			RecordIndex:  s.RecordIndex,
		}
		if err := pw.Write(row); err != nil {
			return err
		}
	}

	return pw.WriteStop()
}
