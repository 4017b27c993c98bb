package fitcore

import "github.com/lucasjlepore/fitcore/fitio"

// epochMarker is the FIT epoch marker value: a literal timestamp of 0
// (1989-12-31T00:00:00Z), which no real device sample carries and which
// this builder therefore treats as "timestamp absent" on top of the
// codec's own per-type invalid-sentinel elision.
const epochMarker uint32 = 0

// Clock is the monotone clock state the event dispatcher maintains across
// a stream: current-timestamp never moves backwards, and start-timestamp
// is fixed to the first valid timestamp seen.
type Clock struct {
	Start      uint32
	Current    uint32
	started    bool
	hasCurrent bool
}

// UpdateTimestamp is the dispatcher's pre-step, run before every record is
// routed to its handler:
//
//  1. A timestamp equal to the epoch marker is discarded and replaced with
//     the current-timestamp, if one exists.
//  2. Otherwise current-timestamp advances to max(record timestamp,
//     current-timestamp).
//  3. start-timestamp is initialised on the first valid timestamp.
//  4. A missing or epoch-marker start-time is filled from
//     current-timestamp.
//  5. A compressed-timestamp field is expanded against current-timestamp
//     and attached as timestamp.
func (c *Clock) UpdateTimestamp(msg *fitio.Message) {
	if ts, ok := msg.Get("timestamp"); ok {
		if v, ok2 := toUint32(ts); ok2 {
			if v == epochMarker {
				msg.RemoveName("timestamp")
				if c.hasCurrent {
					msg.Append("timestamp", c.Current)
				}
			} else {
				c.advance(v)
			}
		}
	}

	if st, ok := msg.Get("start_time"); !ok || isEpochValue(st) {
		if ok {
			msg.RemoveName("start_time")
		}
		if c.hasCurrent {
			msg.Append("start_time", c.Current)
		}
	}

	if cts, ok := msg.Get("compressed_timestamp"); ok && c.hasCurrent {
		offset, ok := toUint32(cts)
		if ok {
			full := ExpandCompressedTimestamp(c.Current, uint8(offset))
			msg.RemoveName("timestamp")
			msg.Append("timestamp", full)
			c.advance(full)
		}
	}
}

func (c *Clock) advance(v uint32) {
	if !c.hasCurrent || v > c.Current {
		c.Current = v
	}
	c.hasCurrent = true
	if !c.started {
		c.Start = v
		c.started = true
	}
}

// ExpandCompressedTimestamp implements the §4.5/§8 compressed-timestamp
// law: for current-timestamp c and 5-bit offset o, the expanded timestamp
// is (c - (c mod 32)) + o when o >= (c mod 32), else with an extra 32
// added to account for the low-5-bits rollover.
func ExpandCompressedTimestamp(current uint32, offset uint8) uint32 {
	base := current - (current % 32)
	o := uint32(offset)
	if o >= current%32 {
		return base + o
	}
	return base + o + 32
}

func isEpochValue(v any) bool {
	n, ok := toUint32(v)
	return ok && n == epochMarker
}

func toUint32(v any) (uint32, bool) {
	switch n := v.(type) {
	case uint8:
		return uint32(n), true
	case uint16:
		return uint32(n), true
	case uint32:
		return n, true
	case int8:
		return uint32(n), true
	case int16:
		return uint32(n), true
	case int32:
		return uint32(n), true
	default:
		return 0, false
	}
}
