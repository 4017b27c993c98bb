package fitcore

import "github.com/lucasjlepore/fitcore/fitio"

// Decode reads an entire ACTIVITY file and assembles it into an Activity,
// mirroring the teacher's single-entry-point AnalyzeFile convention.
func Decode(data []byte, readerOpts ReaderOptions, builderOpts BuilderOptions) (*Activity, error) {
	r, err := fitio.NewReader(data)
	if err != nil {
		return nil, err
	}

	dec := fitio.NewDecoder(r, readerOpts.Tables, readerOpts.Registry)
	builder := NewActivityBuilder(builderOpts)

	if err := dec.Run(builder.Dispatch); err != nil {
		return nil, err
	}

	return builder.CollectActivity(), nil
}
