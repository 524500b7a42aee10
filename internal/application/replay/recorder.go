package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/combat/internal/domain/input"
)

// Recorder collects the detected-input stream of one session. Record can
// be subscribed directly to the input engine.
type Recorder struct {
	data      Data
	recording bool
}

// NewRecorder creates a recorder for the named profile
func NewRecorder(profile string) *Recorder {
	return &Recorder{
		data: Data{
			Version: "1.0",
			Profile: profile,
			Events:  make([]Event, 0, 256),
		},
		recording: true,
	}
}

// Record appends one detected input while recording is active
func (r *Recorder) Record(in input.DetectedInput) {
	if !r.recording {
		return
	}
	r.data.Events = append(r.data.Events, fromDetected(in))
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// EventCount returns the number of recorded events
func (r *Recorder) EventCount() int {
	return len(r.data.Events)
}

// Data returns the recorded session
func (r *Recorder) Data() Data {
	return r.data
}

// Save writes the recorded session as JSON
func (r *Recorder) Save(w io.Writer) error {
	if len(r.data.Events) == 0 {
		return fmt.Errorf("no events to save")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}

// SaveFile writes the recorded session to a file
func (r *Recorder) SaveFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return r.Save(file)
}

// GenerateFilename creates a filename based on the current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
