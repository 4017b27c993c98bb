package fitcore

import "github.com/lucasjlepore/fitcore/fitio"

// TrackRecord is a terminal trackpoint: a timestamp and whatever sensor
// samples the device emitted, after field normalisation.
type TrackRecord struct {
	Fields *fitio.Message
}

// Length is a swim-pool length: its own summary fields plus the track
// records it owns. When a lap carries no lengths, the builder synthesises
// one length holding all of the lap's records.
type Length struct {
	Fields  *fitio.Message
	Records []*TrackRecord
}

// Lap is a summary plus the lengths it owns.
type Lap struct {
	Fields  *fitio.Message
	Lengths []*Length
}

// Session is a summary plus the devices active during it, the resolved
// sport/sub-sport (preferring a dedicated sport message over the
// session's own value), and the laps it owns. Sessions do not own lengths
// or records directly.
type Session struct {
	Fields         *fitio.Message
	Devices        []*fitio.Message
	Sport          any
	SubSport       any
	PoolLength     any
	PoolLengthUnit any
	Laps           []*Lap
}

// FileID is a convenience projection of the file_id message: the fields
// an activity-consuming caller most commonly wants without walking the
// Activity's developer-data-ids or re-decoding anything.
type FileID struct {
	Type         uint8
	Manufacturer uint16
	Product      uint16
	SerialNumber uint32
	TimeCreated  uint32
}

// Activity is the top-level object decoding an ACTIVITY file produces.
type Activity struct {
	StartTime         any
	GUID              string
	FileID            *FileID
	DeveloperDataIDs  []*fitio.Message
	FieldDescriptions []*fitio.Message
	TrainingFile      *fitio.Message
	Sessions          []*Session

	// Warnings collects the same best-effort recovery diagnostics the
	// builder's Logger receives, e.g. records left over after length
	// pairing or laps left over after session assignment.
	Warnings []string
}
