package fitcore

import (
	"github.com/lucasjlepore/fitcore/fitio"
	"github.com/lucasjlepore/fitcore/fitxdata"
)

// ReaderOptions configures the fitio layer a Decode call drives.
type ReaderOptions struct {
	// Tables supplies global/field names and unit conversions. A nil
	// value falls back to fitio.NewDefaultTables().
	Tables fitio.StaticTables

	// Registry resolves developer-field stable keys across the file. A
	// nil value falls back to a fresh fitxdata.New().
	Registry *fitxdata.Registry
}

// BuilderOptions configures an ActivityBuilder.
type BuilderOptions struct {
	// Logger receives best-effort recovery warnings (leftover records
	// after length pairing, records or lengths without a lap, leftover
	// laps after session assignment). A nil value discards warnings.
	Logger Logger

	// Summary computes lap/session summaries the builder must
	// synthesise for leftover records, lengths, or laps. A nil value
	// falls back to a minimal built-in implementation.
	Summary SummaryComputer
}
