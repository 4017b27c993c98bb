package fitcore

import (
	"sort"
	"strconv"

	"github.com/lucasjlepore/fitcore/fitio"
)

// ActivityBuilder extends Dispatcher with the accumulators and handlers
// that assemble a decoded FIT record stream into an Activity.
type ActivityBuilder struct {
	*Dispatcher

	logger  Logger
	summary SummaryComputer

	sessions []*Session
	laps     []*Lap
	lengths  []*Length
	records  []*TrackRecord
	devices  []*fitio.Message
	sport    *fitio.Message

	trainingFiles     []*fitio.Message
	developerDataIDs  []*fitio.Message
	fieldDescriptions []*fitio.Message

	fileID *FileID
	guid   string

	activityTimestamp *uint32

	timerStoppedAll bool

	warnings []string
}

// NewActivityBuilder returns a builder with every on-* handler registered.
func NewActivityBuilder(opts BuilderOptions) *ActivityBuilder {
	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	summary := opts.Summary
	if summary == nil {
		summary = basicSummaryComputer{}
	}

	b := &ActivityBuilder{
		Dispatcher: NewDispatcher(),
		logger:     logger,
		summary:    summary,
	}

	b.On("file_id", b.onFileID)
	b.On("activity", b.onActivity)
	b.On("session", b.onSession)
	b.On("record", b.onRecord)
	b.On("length", b.onLength)
	b.On("lap", b.onLap)
	b.On("device_info", b.onDeviceInfo)
	b.On("sport", b.onSport)
	b.On("event", b.onEvent)
	b.On("developer_data_id", b.onDeveloperDataID)
	b.On("field_description", b.onFieldDescription)
	b.On("training_file", b.onTrainingFile)

	return b
}

func (b *ActivityBuilder) warn(msg string) {
	b.warnings = append(b.warnings, msg)
	b.logger.Warnf("%s", msg)
}

func (b *ActivityBuilder) onFileID(msg *fitio.Message) error {
	processFields(msg)

	typ, _ := msg.Get("type")
	typeByte, ok := toUint8(typ)
	if !ok || typeByte != FileTypeActivity {
		return ErrNotAnActivity
	}

	fileID := &FileID{Type: typeByte}
	if v, ok := msg.Get("manufacturer"); ok {
		if n, ok := toUint32(v); ok {
			fileID.Manufacturer = uint16(n)
		}
	}
	if v, ok := msg.Get("product"); ok {
		if n, ok := toUint32(v); ok {
			fileID.Product = uint16(n)
		}
	}
	if v, ok := msg.Get("serial_number"); ok {
		if n, ok := toUint32(v); ok {
			fileID.SerialNumber = n
		}
	}
	if v, ok := msg.Get("time_created"); ok {
		if n, ok := toUint32(v); ok {
			fileID.TimeCreated = n
		}
	}
	b.fileID = fileID

	if b.guid == "" {
		b.guid = guidFromFileID(fileID)
	}
	return nil
}

func guidFromFileID(f *FileID) string {
	return strconv.FormatUint(uint64(f.SerialNumber), 10) + "-" + strconv.FormatUint(uint64(f.TimeCreated), 10)
}

func (b *ActivityBuilder) onActivity(msg *fitio.Message) error {
	processFields(msg)
	if ts, ok := msg.Get("timestamp"); ok {
		if n, ok := toUint32(ts); ok {
			b.activityTimestamp = &n
		}
	}
	return nil
}

func (b *ActivityBuilder) onSession(msg *fitio.Message) error {
	processFields(msg)

	session := &Session{Fields: msg, Devices: b.devices}

	if b.sport != nil {
		if v, ok := b.sport.Get("sport"); ok {
			session.Sport = v
		}
		if v, ok := b.sport.Get("sub_sport"); ok {
			session.SubSport = v
		}
	}
	if session.Sport == nil {
		if v, ok := msg.Get("sport"); ok {
			session.Sport = v
		}
	}
	if session.SubSport == nil {
		if v, ok := msg.Get("sub_sport"); ok {
			session.SubSport = v
		}
	}
	if v, ok := msg.Get("pool_length"); ok {
		session.PoolLength = v
	}
	if v, ok := msg.Get("pool_length_unit"); ok {
		session.PoolLengthUnit = v
	}

	b.sessions = append(b.sessions, session)
	b.devices = nil
	b.sport = nil
	return nil
}

func (b *ActivityBuilder) onRecord(msg *fitio.Message) error {
	processFields(msg)

	ts, hasTS := msg.Get("timestamp")
	if hasTS && len(b.records) > 0 {
		last := b.records[len(b.records)-1]
		if lastTS, ok := last.Fields.Get("timestamp"); ok && equalTimestamp(lastTS, ts) {
			last.Fields.Fields = append(last.Fields.Fields, msg.Fields...)
			return nil
		}
	}
	b.records = append(b.records, &TrackRecord{Fields: msg})
	return nil
}

func (b *ActivityBuilder) onLength(msg *fitio.Message) error {
	processFields(msg)
	b.lengths = append(b.lengths, &Length{Fields: msg})
	return nil
}

func (b *ActivityBuilder) onLap(msg *fitio.Message) error {
	processFields(msg)

	lap := &Lap{Fields: msg}
	b.attachLengthsAndRecords(lap, b.lengths, b.records)

	b.lengths = nil
	b.records = nil
	b.laps = append(b.laps, lap)
	return nil
}

// attachLengthsAndRecords implements the four pairing cases from §4.6.
func (b *ActivityBuilder) attachLengthsAndRecords(lap *Lap, lengths []*Length, records []*TrackRecord) {
	switch {
	case len(lengths) == 0 && len(records) == 0:
		return

	case len(lengths) == 0 && len(records) > 0:
		lap.Lengths = []*Length{{Records: records}}

	case len(lengths) == len(records):
		for i, length := range lengths {
			length.Records = []*TrackRecord{records[i]}
		}
		lap.Lengths = lengths

	default:
		sortLengthsByTimestamp(lengths)
		sortRecordsByTimestamp(records)

		idx := 0
		for _, length := range lengths {
			lengthTS, hasTS := length.Fields.Get("timestamp")
			for idx < len(records) {
				recTS, ok := records[idx].Fields.Get("timestamp")
				if !ok || !hasTS || !timestampLessEqual(recTS, lengthTS) {
					break
				}
				length.Records = append(length.Records, records[idx])
				idx++
			}
		}
		if idx < len(records) {
			b.warn("lap: records left over after length pairing, dropped")
		}
		lap.Lengths = lengths
	}
}

func (b *ActivityBuilder) onDeviceInfo(msg *fitio.Message) error {
	processFields(msg)
	b.devices = append(b.devices, msg)
	return nil
}

func (b *ActivityBuilder) onSport(msg *fitio.Message) error {
	processFields(msg)
	b.sport = msg
	return nil
}

// FIT event/event_type enum values relevant to timer stop/start tracking.
const (
	eventTimer       = 0
	eventTypeStart   = 0
	eventTypeStopAll = 4
)

func (b *ActivityBuilder) onEvent(msg *fitio.Message) error {
	event, _ := msg.Get("event")
	eventType, _ := msg.Get("event_type")

	eventCode, hasEvent := toUint8(event)
	typeCode, hasType := toUint8(eventType)
	if hasEvent && eventCode == eventTimer && hasType {
		switch typeCode {
		case eventTypeStopAll:
			b.timerStoppedAll = true
		case eventTypeStart:
			b.timerStoppedAll = false
		}
	}
	return nil
}

func (b *ActivityBuilder) onDeveloperDataID(msg *fitio.Message) error {
	b.developerDataIDs = append(b.developerDataIDs, msg)
	return nil
}

func (b *ActivityBuilder) onFieldDescription(msg *fitio.Message) error {
	b.fieldDescriptions = append(b.fieldDescriptions, msg)
	return nil
}

func (b *ActivityBuilder) onTrainingFile(msg *fitio.Message) error {
	b.trainingFiles = append(b.trainingFiles, msg)
	return nil
}

// CollectActivity implements the seven-step finalisation algorithm.
func (b *ActivityBuilder) CollectActivity() *Activity {
	// 1. single-session timestamp correction.
	if len(b.sessions) == 1 {
		s := b.sessions[0]
		ts, hasTS := s.Fields.Get("timestamp")
		st, hasST := s.Fields.Get("start_time")
		if hasTS && hasST && equalTimestamp(ts, st) {
			s.Fields.RemoveName("timestamp")
			s.Fields.Append("timestamp", b.Clock.Current)
		}
	}

	// 2. synthesise a terminal lap for leftover records/lengths.
	if len(b.records) > 0 || len(b.lengths) > 0 {
		current := b.Clock.Current
		summaryMsg := b.summary.ComputeLapSummary(b.lengths, b.records, current)
		lap := &Lap{Fields: summaryMsg}
		b.attachLengthsAndRecords(lap, b.lengths, b.records)
		b.lengths = nil
		b.records = nil
		b.laps = append(b.laps, lap)
		b.warn("records or lengths left over without a lap, synthesised terminal lap")
	}

	// 3. laps are already in chronological order: onLap and the terminal-lap
	// synthesis above both append, and FIT messages decode strictly in
	// byte/device order.

	// 4. assign laps to sessions by a timestamp prefix-walk.
	sortSessionsByTimestamp(b.sessions)
	idx := 0
	for _, session := range b.sessions {
		sessionTS, hasTS := session.Fields.Get("timestamp")
		for idx < len(b.laps) {
			lapTS, ok := b.laps[idx].Fields.Get("timestamp")
			if !ok || !hasTS || !timestampLessEqual(lapTS, sessionTS) {
				break
			}
			session.Laps = append(session.Laps, b.laps[idx])
			idx++
		}
	}

	// 5. synthesise a trailing session for leftover laps.
	if idx < len(b.laps) {
		leftover := b.laps[idx:]
		current := b.Clock.Current
		summaryMsg := b.summary.ComputeSessionSummary(leftover, current)
		session := &Session{Fields: summaryMsg, Sport: "generic", Laps: leftover}
		b.sessions = append(b.sessions, session)
		b.warn("laps left over after session assignment, synthesised trailing session")
	}

	// 6. prepend any remaining devices to the last session.
	if len(b.devices) > 0 && len(b.sessions) > 0 {
		last := b.sessions[len(b.sessions)-1]
		last.Devices = append(b.devices, last.Devices...)
		b.devices = nil
	}

	// 7. emit the final record.
	startTime := any(b.Clock.Start)
	if b.activityTimestamp != nil {
		startTime = *b.activityTimestamp
	}

	return &Activity{
		StartTime:         startTime,
		GUID:              b.guid,
		FileID:            b.fileID,
		DeveloperDataIDs:  b.developerDataIDs,
		FieldDescriptions: b.fieldDescriptions,
		TrainingFile:      firstOrNil(b.trainingFiles),
		Sessions:          b.sessions,
		Warnings:          b.warnings,
	}
}

func firstOrNil(msgs []*fitio.Message) *fitio.Message {
	if len(msgs) == 0 {
		return nil
	}
	return msgs[0]
}

func sortLengthsByTimestamp(lengths []*Length) {
	sort.SliceStable(lengths, func(i, j int) bool {
		ti, _ := lengths[i].Fields.Get("timestamp")
		tj, _ := lengths[j].Fields.Get("timestamp")
		return timestampLessEqual(ti, tj) && !equalTimestamp(ti, tj)
	})
}

func sortRecordsByTimestamp(records []*TrackRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, _ := records[i].Fields.Get("timestamp")
		tj, _ := records[j].Fields.Get("timestamp")
		return timestampLessEqual(ti, tj) && !equalTimestamp(ti, tj)
	})
}

func sortSessionsByTimestamp(sessions []*Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		ti, _ := sessions[i].Fields.Get("timestamp")
		tj, _ := sessions[j].Fields.Get("timestamp")
		return timestampLessEqual(ti, tj) && !equalTimestamp(ti, tj)
	})
}

func equalTimestamp(a, b any) bool {
	av, aok := toUint32(a)
	bv, bok := toUint32(b)
	return aok && bok && av == bv
}

func timestampLessEqual(a, b any) bool {
	av, aok := toUint32(a)
	bv, bok := toUint32(b)
	return aok && bok && av <= bv
}

func toUint8(v any) (uint8, bool) {
	switch n := v.(type) {
	case uint8:
		return n, true
	case uint16:
		return uint8(n), true
	case uint32:
		return uint8(n), true
	case int8:
		return uint8(n), true
	default:
		return 0, false
	}
}

