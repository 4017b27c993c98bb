// Package fitcore normalises decoded FIT records into a structured
// activity: sessions containing laps containing lengths containing
// trackpoint records, plus device metadata and developer field
// definitions. It is the event dispatcher and activity builder named in
// the component design; the byte-level reader and record decoder live in
// fitio, and the developer-field registry lives in fitxdata.
package fitcore

import "errors"

// ErrNotAnActivity is returned by the file-id handler when the decoded
// file declares a non-activity file type.
var ErrNotAnActivity = errors.New("fitcore: file-id does not declare an activity file")
