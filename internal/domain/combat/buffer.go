package combat

import "github.com/younwookim/combat/internal/domain/input"

// Default input buffer knobs
const (
	DefaultBufferSize   = 2
	DefaultBufferMaxAge = 0.3
)

// BufferedInput wraps a detected input with its accumulated time in the
// buffer
type BufferedInput struct {
	Input input.DetectedInput
	Age   float64
}

// Buffer is a bounded, age-limited queue of detected inputs awaiting
// consumption by the state machine. At capacity the most recent slot is
// overwritten rather than growing; consumption is oldest-first.
type Buffer struct {
	entries []BufferedInput
	size    int
	maxAge  float64
}

// NewBuffer creates a buffer with the given capacity and maximum entry age
// in seconds. Non-positive values fall back to the defaults.
func NewBuffer(size int, maxAge float64) *Buffer {
	if size <= 0 {
		size = DefaultBufferSize
	}
	if maxAge <= 0 {
		maxAge = DefaultBufferMaxAge
	}
	return &Buffer{
		entries: make([]BufferedInput, 0, size),
		size:    size,
		maxAge:  maxAge,
	}
}

// Push appends an input at the tail, overwriting the most recent entry
// when the buffer is full
func (b *Buffer) Push(in input.DetectedInput) {
	entry := BufferedInput{Input: in}
	if len(b.entries) >= b.size {
		b.entries[len(b.entries)-1] = entry
		return
	}
	b.entries = append(b.entries, entry)
}

// Pop removes and returns the oldest buffered input
func (b *Buffer) Pop() (input.DetectedInput, bool) {
	if len(b.entries) == 0 {
		return input.DetectedInput{}, false
	}
	entry := b.entries[0]
	copy(b.entries, b.entries[1:])
	b.entries = b.entries[:len(b.entries)-1]
	return entry.Input, true
}

// Age advances every entry's time in buffer by dt seconds and drops the
// entries that exceeded the maximum age
func (b *Buffer) Age(dt float64) {
	live := b.entries[:0]
	for i := range b.entries {
		b.entries[i].Age += dt
		if b.entries[i].Age > b.maxAge {
			continue
		}
		live = append(live, b.entries[i])
	}
	b.entries = live
}

// Len returns the number of buffered entries
func (b *Buffer) Len() int {
	return len(b.entries)
}

// Clear drops every buffered entry
func (b *Buffer) Clear() {
	b.entries = b.entries[:0]
}
