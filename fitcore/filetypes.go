package fitcore

// FIT file_type enum values the file-id handler and the writer
// specialisations key off of.
const (
	FileTypeDevice   = 1
	FileTypeSettings = 2
	FileTypeSport    = 3
	FileTypeActivity = 4
	FileTypeWorkout  = 5
)
