// Package combat drives a fighter's hierarchical action state: situation
// trees of fighter states, buffered-input consumption, and the
// transition/revert protocol completed by animation playback.
package combat

// FrameState represents where the fighter currently is in an action's
// frame data. Buffered inputs are only consumed while idle or recovering.
type FrameState int

const (
	FrameIdle FrameState = iota
	FrameStartup
	FrameActive
	FrameRecovery
)

// String returns the string representation of the frame state
func (s FrameState) String() string {
	switch s {
	case FrameIdle:
		return "Idle"
	case FrameStartup:
		return "Startup"
	case FrameActive:
		return "Active"
	case FrameRecovery:
		return "Recovery"
	default:
		return "Unknown"
	}
}

// canConsumeBuffer reports whether buffered inputs may be dequeued
func (s FrameState) canConsumeBuffer() bool {
	return s == FrameIdle || s == FrameRecovery
}
