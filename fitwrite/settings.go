package fitwrite

import "github.com/lucasjlepore/fitcore/fitproto"

const (
	userProfileLocalID uint8 = 1
	hrmProfileLocalID  uint8 = 2

	secondsPerYear = 31536000
)

var userProfileDef = MessageDefinition{
	GlobalID: 3,
	LocalID:  userProfileLocalID,
	Fields: []FieldSpec{
		{Number: 1, Name: "gender", Type: fitproto.Enum},
		{Number: 3, Name: "height", Type: fitproto.Uint8},
		{Number: 4, Name: "weight", Type: fitproto.Uint16},
		{Number: 5, Name: "age", Type: fitproto.Uint8},
		{Number: 13, Name: "activity_class", Type: fitproto.Enum},
		{Number: 18, Name: "birth_year", Type: fitproto.Uint8},
	},
}

var hrmProfileDef = MessageDefinition{
	GlobalID: 4,
	LocalID:  hrmProfileLocalID,
	Fields: []FieldSpec{
		{Number: 1, Name: "log_hrv", Type: fitproto.Enum},
	},
}

// UserProfile is the input to the settings file's global-3 message, in
// natural (unscaled) units; Finalise applies the wire-format scaling.
type UserProfile struct {
	Gender        uint8
	HeightMeters  float64
	WeightKg      float64
	DateOfBirth   uint32  // FIT epoch seconds
	Now           uint32  // FIT epoch seconds, for age derivation
	ActivityClass float64 // 0.0-1.0, or negative for "athlete"
	BirthYear     int
}

// SettingsWriter builds a settings file (file-type 2): a user-profile
// message and an hrm-profile message.
type SettingsWriter struct {
	w        *Writer
	preamble FilePreamble
	profile  UserProfile
	logHRV   bool
}

// NewSettingsWriter returns a SettingsWriter with the preamble queued for
// emission at Finalise.
func NewSettingsWriter(preamble FilePreamble, profile UserProfile, logHRV bool) *SettingsWriter {
	preamble.FileType = 2
	return &SettingsWriter{w: NewWriter(false), preamble: preamble, profile: profile, logHRV: logHRV}
}

func (sw *SettingsWriter) Finalise() ([]byte, error) {
	if err := writePreamble(sw.w, sw.preamble); err != nil {
		return nil, err
	}

	p := sw.profile
	age := uint8(0)
	if p.Now > p.DateOfBirth {
		age = uint8((p.Now - p.DateOfBirth) / secondsPerYear)
	}

	if err := sw.w.PutDefinition(userProfileDef); err != nil {
		return nil, err
	}
	if err := sw.w.PutMessage(3, map[string]any{
		"gender":         p.Gender,
		"height":         uint8(p.HeightMeters * 100),
		"weight":         uint16(p.WeightKg * 10),
		"age":            age,
		"activity_class": uint8(p.ActivityClass * 10),
		"birth_year":     uint8(p.BirthYear - 1900),
	}); err != nil {
		return nil, err
	}

	if err := sw.w.PutDefinition(hrmProfileDef); err != nil {
		return nil, err
	}
	logHRV := uint8(0)
	if sw.logHRV {
		logHRV = 1
	}
	if err := sw.w.PutMessage(4, map[string]any{
		"log_hrv": logHRV,
	}); err != nil {
		return nil, err
	}

	return sw.w.Finalise(), nil
}
