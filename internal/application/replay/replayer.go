package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/younwookim/combat/internal/domain/input"
)

// Replayer plays a recorded session back against the simulation clock
type Replayer struct {
	data Data
	next int
}

// NewReplayer creates a replayer over a recorded session
func NewReplayer(data Data) *Replayer {
	return &Replayer{data: data}
}

// Load reads a recorded session as JSON
func Load(r io.Reader) (*Data, error) {
	var data Data
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &data, nil
}

// LoadFile reads a recorded session from a file
func LoadFile(filename string) (*Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Load(file)
}

// Next returns the detected inputs recorded up to and including time t
// that have not been returned yet
func (r *Replayer) Next(t float64) []input.DetectedInput {
	var out []input.DetectedInput
	for r.next < len(r.data.Events) && r.data.Events[r.next].T <= t {
		out = append(out, r.data.Events[r.next].ToDetected())
		r.next++
	}
	return out
}

// Done reports whether every recorded event has been returned
func (r *Replayer) Done() bool {
	return r.next >= len(r.data.Events)
}

// TotalEvents returns the number of recorded events
func (r *Replayer) TotalEvents() int {
	return len(r.data.Events)
}

// Profile returns the profile name the session was recorded with
func (r *Replayer) Profile() string {
	return r.data.Profile
}

// Reset rewinds the replayer to the beginning
func (r *Replayer) Reset() {
	r.next = 0
}
