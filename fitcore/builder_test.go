package fitcore

import (
	"testing"

	"github.com/lucasjlepore/fitcore/fitio"
)

func dispatch(t *testing.T, b *ActivityBuilder, globalName string, fields ...fitio.Field) {
	t.Helper()
	msg := &fitio.Message{GlobalName: globalName, Fields: fields}
	if err := b.Dispatch(msg); err != nil {
		t.Fatalf("dispatch %s: %v", globalName, err)
	}
}

func TestOnFileIDRejectsNonActivity(t *testing.T) {
	b := NewActivityBuilder(BuilderOptions{})
	msg := &fitio.Message{GlobalName: "file_id", Fields: []fitio.Field{
		{Name: "type", Value: uint8(FileTypeSettings)},
	}}
	if err := b.Dispatch(msg); err != ErrNotAnActivity {
		t.Fatalf("expected ErrNotAnActivity, got %v", err)
	}
}

func TestOnFileIDAcceptsActivityAndSetsGUID(t *testing.T) {
	b := NewActivityBuilder(BuilderOptions{})
	dispatch(t, b, "file_id",
		fitio.Field{Name: "type", Value: uint8(FileTypeActivity)},
		fitio.Field{Name: "serial_number", Value: uint32(123)},
		fitio.Field{Name: "time_created", Value: uint32(456)},
	)
	if b.guid != "123-456" {
		t.Fatalf("expected guid 123-456, got %q", b.guid)
	}
	if b.fileID == nil || b.fileID.SerialNumber != 123 {
		t.Fatalf("expected fileID captured, got %+v", b.fileID)
	}
}

// TestOnLapSynthesisesLengthFromLeftoverRecords covers pairing case 2:
// lengths empty, records non-empty.
func TestOnLapSynthesisesLengthFromLeftoverRecords(t *testing.T) {
	b := NewActivityBuilder(BuilderOptions{})
	dispatch(t, b, "record", fitio.Field{Name: "timestamp", Value: uint32(10)})
	dispatch(t, b, "record", fitio.Field{Name: "timestamp", Value: uint32(11)})
	dispatch(t, b, "lap", fitio.Field{Name: "timestamp", Value: uint32(11)})

	if len(b.laps) != 1 {
		t.Fatalf("expected one lap, got %d", len(b.laps))
	}
	lap := b.laps[0]
	if len(lap.Lengths) != 1 || len(lap.Lengths[0].Records) != 2 {
		t.Fatalf("expected one synthesised length with two records, got %+v", lap.Lengths)
	}
}

// TestOnLapPairsLengthsAndRecordsOneToOne covers pairing case 3, the
// Garmin-Swim convention: equal counts pair by position.
func TestOnLapPairsLengthsAndRecordsOneToOne(t *testing.T) {
	b := NewActivityBuilder(BuilderOptions{})
	dispatch(t, b, "length", fitio.Field{Name: "timestamp", Value: uint32(5)})
	dispatch(t, b, "length", fitio.Field{Name: "timestamp", Value: uint32(9)})
	dispatch(t, b, "record", fitio.Field{Name: "timestamp", Value: uint32(999)})
	dispatch(t, b, "record", fitio.Field{Name: "timestamp", Value: uint32(998)})
	dispatch(t, b, "lap", fitio.Field{Name: "timestamp", Value: uint32(9)})

	lap := b.laps[0]
	if len(lap.Lengths) != 2 {
		t.Fatalf("expected two lengths, got %d", len(lap.Lengths))
	}
	if len(lap.Lengths[0].Records) != 1 || len(lap.Lengths[1].Records) != 1 {
		t.Fatalf("expected each length paired with exactly one record by position")
	}
}

// TestOnLapAssignsByTimestampPrefixWhenCountsDiffer covers pairing case 4.
func TestOnLapAssignsByTimestampPrefixWhenCountsDiffer(t *testing.T) {
	b := NewActivityBuilder(BuilderOptions{})
	dispatch(t, b, "length", fitio.Field{Name: "timestamp", Value: uint32(10)})
	dispatch(t, b, "length", fitio.Field{Name: "timestamp", Value: uint32(20)})
	dispatch(t, b, "record", fitio.Field{Name: "timestamp", Value: uint32(8)})
	dispatch(t, b, "record", fitio.Field{Name: "timestamp", Value: uint32(9)})
	dispatch(t, b, "record", fitio.Field{Name: "timestamp", Value: uint32(15)})
	dispatch(t, b, "lap", fitio.Field{Name: "timestamp", Value: uint32(20)})

	lap := b.laps[0]
	if len(lap.Lengths[0].Records) != 2 {
		t.Fatalf("expected first length to absorb the two earliest records, got %d", len(lap.Lengths[0].Records))
	}
	if len(lap.Lengths[1].Records) != 1 {
		t.Fatalf("expected second length to absorb the remaining record, got %d", len(lap.Lengths[1].Records))
	}
}

func TestOnRecordMergesSameTimestamp(t *testing.T) {
	b := NewActivityBuilder(BuilderOptions{})
	dispatch(t, b, "record",
		fitio.Field{Name: "timestamp", Value: uint32(10)},
		fitio.Field{Name: "heart_rate", Value: uint8(140)},
	)
	dispatch(t, b, "record",
		fitio.Field{Name: "timestamp", Value: uint32(10)},
		fitio.Field{Name: "power", Value: uint16(200)},
	)

	if len(b.records) != 1 {
		t.Fatalf("expected same-timestamp records to merge into one, got %d", len(b.records))
	}
	if _, ok := b.records[0].Fields.Get("heart_rate"); !ok {
		t.Fatalf("expected merged record to retain heart_rate")
	}
	if _, ok := b.records[0].Fields.Get("power"); !ok {
		t.Fatalf("expected merged record to gain power")
	}
}

func TestCollectActivitySynthesisesTerminalLapForLeftoverRecords(t *testing.T) {
	b := NewActivityBuilder(BuilderOptions{})
	dispatch(t, b, "file_id",
		fitio.Field{Name: "type", Value: uint8(FileTypeActivity)},
	)
	dispatch(t, b, "session", fitio.Field{Name: "timestamp", Value: uint32(100)})
	dispatch(t, b, "record", fitio.Field{Name: "timestamp", Value: uint32(50)})

	activity := b.CollectActivity()
	if len(activity.Sessions) != 1 {
		t.Fatalf("expected one session, got %d", len(activity.Sessions))
	}
	if len(activity.Sessions[0].Laps) != 1 {
		t.Fatalf("expected the synthesised terminal lap assigned to the session, got %d laps", len(activity.Sessions[0].Laps))
	}
}

// TestCollectActivityAssignsLapsInChronologicalOrder guards against
// reintroducing a reversal between onLap's append and the session
// prefix-walk: laps decode in chronological order and must come back out
// that way.
func TestCollectActivityAssignsLapsInChronologicalOrder(t *testing.T) {
	b := NewActivityBuilder(BuilderOptions{})
	dispatch(t, b, "file_id",
		fitio.Field{Name: "type", Value: uint8(FileTypeActivity)},
	)
	dispatch(t, b, "lap", fitio.Field{Name: "timestamp", Value: uint32(100)})
	dispatch(t, b, "lap", fitio.Field{Name: "timestamp", Value: uint32(200)})
	dispatch(t, b, "lap", fitio.Field{Name: "timestamp", Value: uint32(300)})
	dispatch(t, b, "session", fitio.Field{Name: "timestamp", Value: uint32(300)})

	activity := b.CollectActivity()
	if len(activity.Sessions) != 1 {
		t.Fatalf("expected one session, got %d", len(activity.Sessions))
	}
	laps := activity.Sessions[0].Laps
	if len(laps) != 3 {
		t.Fatalf("expected three laps assigned, got %d", len(laps))
	}
	for i, want := range []uint32{100, 200, 300} {
		got, ok := laps[i].Fields.Get("timestamp")
		if !ok || got != want {
			t.Fatalf("expected laps in ascending timestamp order, lap %d got %v", i, got)
		}
	}
}

func TestCollectActivitySynthesisesTrailingSessionForLeftoverLaps(t *testing.T) {
	b := NewActivityBuilder(BuilderOptions{})
	dispatch(t, b, "session",
		fitio.Field{Name: "timestamp", Value: uint32(10)},
		fitio.Field{Name: "start_time", Value: uint32(5)},
	)
	dispatch(t, b, "lap", fitio.Field{Name: "timestamp", Value: uint32(999)})

	activity := b.CollectActivity()
	if len(activity.Sessions) != 2 {
		t.Fatalf("expected a synthesised trailing session, got %d sessions", len(activity.Sessions))
	}
	if activity.Sessions[1].Sport != "generic" {
		t.Fatalf("expected trailing session sport 'generic', got %v", activity.Sessions[1].Sport)
	}
	if len(activity.Warnings) == 0 {
		t.Fatalf("expected a warning recorded for the leftover lap")
	}
}
