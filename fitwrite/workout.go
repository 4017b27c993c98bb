package fitwrite

import "github.com/lucasjlepore/fitcore/fitproto"

const (
	workoutLocalID     uint8 = 1
	workoutStepLocalID uint8 = 2
)

var workoutDef = MessageDefinition{
	GlobalID: 26,
	LocalID:  workoutLocalID,
	Fields: []FieldSpec{
		{Number: 4, Name: "wkt_name", Type: fitproto.String, Count: 32},
		{Number: 5, Name: "sport", Type: fitproto.Enum},
		{Number: 6, Name: "sub_sport", Type: fitproto.Enum},
		{Number: 7, Name: "num_valid_steps", Type: fitproto.Uint16},
	},
}

var workoutStepDef = MessageDefinition{
	GlobalID: 27,
	LocalID:  workoutStepLocalID,
	Fields: []FieldSpec{
		{Number: 254, Name: "message_index", Type: fitproto.Uint16},
		{Number: 0, Name: "wkt_step_name", Type: fitproto.String, Count: 16},
		{Number: 1, Name: "duration_type", Type: fitproto.Enum},
		{Number: 2, Name: "duration_value", Type: fitproto.Uint32},
		{Number: 3, Name: "target_type", Type: fitproto.Enum},
		{Number: 4, Name: "target_value", Type: fitproto.Uint32},
	},
}

// WorkoutStep is one step of a workout, in insertion order. MessageIndex
// is assigned automatically by AddStep.
type WorkoutStep struct {
	MessageIndex uint16
	Name         string
	DurationType uint8
	Duration     uint32
	TargetType   uint8
	TargetValue  uint32
}

// WorkoutWriter builds a workout file (file-type 5): a workout name, a
// sport, and a mutable, auto-indexed list of steps. Nothing is written
// until Finalise.
type WorkoutWriter struct {
	w        *Writer
	preamble FilePreamble
	name     string
	sport    uint8
	subSport uint8
	steps    []WorkoutStep
}

// NewWorkoutWriter returns a WorkoutWriter with the file-id/file-creator
// preamble queued for emission at Finalise.
func NewWorkoutWriter(preamble FilePreamble, name string, sport, subSport uint8) *WorkoutWriter {
	preamble.FileType = 5
	return &WorkoutWriter{
		w:        NewWriter(false),
		preamble: preamble,
		name:     name,
		sport:    sport,
		subSport: subSport,
	}
}

// AddStep appends a step, assigning it the next message-index.
func (ww *WorkoutWriter) AddStep(step WorkoutStep) {
	step.MessageIndex = uint16(len(ww.steps))
	ww.steps = append(ww.steps, step)
}

// Finalise emits the preamble, the workout definition+data, the
// workout-step definition followed by one workout-step data record per
// step in insertion order, and returns the completed buffer.
func (ww *WorkoutWriter) Finalise() ([]byte, error) {
	if err := writePreamble(ww.w, ww.preamble); err != nil {
		return nil, err
	}

	if err := ww.w.PutDefinition(workoutDef); err != nil {
		return nil, err
	}
	if err := ww.w.PutMessage(26, map[string]any{
		"wkt_name":        ww.name,
		"sport":           ww.sport,
		"sub_sport":       ww.subSport,
		"num_valid_steps": uint16(len(ww.steps)),
	}); err != nil {
		return nil, err
	}

	if err := ww.w.PutDefinition(workoutStepDef); err != nil {
		return nil, err
	}
	for _, step := range ww.steps {
		if err := ww.w.PutMessage(27, map[string]any{
			"message_index":  step.MessageIndex,
			"wkt_step_name":  step.Name,
			"duration_type":  step.DurationType,
			"duration_value": step.Duration,
			"target_type":    step.TargetType,
			"target_value":   step.TargetValue,
		}); err != nil {
			return nil, err
		}
	}

	return ww.w.Finalise(), nil
}
