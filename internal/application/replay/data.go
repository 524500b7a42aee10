// Package replay records the emitted detected-input stream and plays it
// back, so a combat exchange can be reproduced without a device attached.
package replay

import "github.com/younwookim/combat/internal/domain/input"

// Event records one detected input
type Event struct {
	T        float64  `json:"t"`              // engine time of detection, seconds
	ID       string   `json:"id"`             // input or pattern identifier
	Seq      bool     `json:"seq,omitempty"`  // sequence match rather than button
	Pressed  bool     `json:"pressed"`        // press vs release
	Held     float64  `json:"held,omitempty"` // press duration, releases only
	Sequence []string `json:"path,omitempty"` // matched identifier path
}

// Data contains one recorded session
type Data struct {
	Version string  `json:"version"`
	Profile string  `json:"profile"`
	Events  []Event `json:"events"`
}

// fromDetected converts a detected input into its recorded form
func fromDetected(in input.DetectedInput) Event {
	return Event{
		T:        in.At,
		ID:       in.ID,
		Seq:      in.Kind == input.KindSequence,
		Pressed:  in.Pressed,
		Held:     in.Held,
		Sequence: in.Sequence,
	}
}

// ToDetected converts a recorded event back into a detected input. Bind
// snapshots are not recorded; replayed inputs carry none.
func (e Event) ToDetected() input.DetectedInput {
	kind := input.KindButton
	if e.Seq {
		kind = input.KindSequence
	}
	return input.DetectedInput{
		Kind:     kind,
		ID:       e.ID,
		At:       e.T,
		Pressed:  e.Pressed,
		Held:     e.Held,
		Sequence: e.Sequence,
	}
}
