package fitcore

import "github.com/lucasjlepore/fitcore/fitio"

// SummaryComputer derives a summary message for a lap or session that the
// builder had to synthesise (a terminal lap for leftover records/lengths,
// or a trailing session for leftover laps). It is the external
// `compute_summary` collaborator: callers with domain-specific rollup
// needs (distance, calories, pace) supply their own implementation.
type SummaryComputer interface {
	ComputeLapSummary(lengths []*Length, records []*TrackRecord, timestamp uint32) *fitio.Message
	ComputeSessionSummary(laps []*Lap, timestamp uint32) *fitio.Message
}

// basicSummaryComputer is the default SummaryComputer: it reports nothing
// beyond the timestamp the builder already knows, leaving richer rollups
// to a caller-supplied implementation.
type basicSummaryComputer struct{}

func (basicSummaryComputer) ComputeLapSummary(lengths []*Length, records []*TrackRecord, timestamp uint32) *fitio.Message {
	return &fitio.Message{
		GlobalName: "lap",
		Fields: []fitio.Field{
			{Name: "timestamp", Value: timestamp},
		},
	}
}

func (basicSummaryComputer) ComputeSessionSummary(laps []*Lap, timestamp uint32) *fitio.Message {
	return &fitio.Message{
		GlobalName: "session",
		Fields: []fitio.Field{
			{Name: "timestamp", Value: timestamp},
			{Name: "sport", Value: "generic"},
		},
	}
}
