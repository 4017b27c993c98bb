package fitexport

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/lucasjlepore/fitcore/fitcore"
	"github.com/lucasjlepore/fitcore/fitio"
)

func buildActivity() *fitcore.Activity {
	rec := func(ts uint32, power uint16, hr uint8) *fitcore.TrackRecord {
		return &fitcore.TrackRecord{Fields: &fitio.Message{Fields: []fitio.Field{
			{Name: "timestamp", Value: ts},
			{Name: "power", Value: power},
			{Name: "heart_rate", Value: hr},
		}}}
	}
	length := &fitcore.Length{Records: []*fitcore.TrackRecord{rec(1000, 200, 140), rec(1001, 210, 141)}}
	lap := &fitcore.Lap{Lengths: []*fitcore.Length{length}}
	session := &fitcore.Session{Laps: []*fitcore.Lap{lap}}
	return &fitcore.Activity{Sessions: []*fitcore.Session{session}}
}

func TestFlattenOrdersByElapsedTime(t *testing.T) {
	samples := Flatten(buildActivity())
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].ElapsedS != 0 {
		t.Fatalf("expected first sample elapsed 0, got %v", samples[0].ElapsedS)
	}
	if samples[1].ElapsedS != 1 {
		t.Fatalf("expected second sample elapsed 1, got %v", samples[1].ElapsedS)
	}
	if !samples[0].ValidPower || samples[0].PowerW != 200 {
		t.Fatalf("expected first sample power 200, got %v (valid=%v)", samples[0].PowerW, samples[0].ValidPower)
	}
}

func TestWriteCSVHeaderAndRowCount(t *testing.T) {
	samples := Flatten(buildActivity())
	var buf bytes.Buffer
	if err := WriteCSV(&buf, samples); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "timestamp_utc" {
		t.Fatalf("expected first column timestamp_utc, got %q", rows[0][0])
	}
}
