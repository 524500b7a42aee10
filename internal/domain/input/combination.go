package input

import "sort"

// PressMode selects the timing rule a combination applies to its
// components' detection timestamps
type PressMode int

const (
	// Synchronous requires all components pressed effectively together:
	// the mean gap between consecutive sorted timestamps must not exceed
	// the engine tolerance.
	Synchronous PressMode = iota
	// Ordered requires components pressed in declaration order, each no
	// later than the tolerance after the previous one.
	Ordered
)

// String returns the string representation of the press mode
func (m PressMode) String() string {
	switch m {
	case Synchronous:
		return "Synchronous"
	case Ordered:
		return "Ordered"
	default:
		return "Unknown"
	}
}

// Combination is a composite input over two or more component binds.
// With ReleasePropagate set, components still held when the combination
// breaks are treated as freshly pressed, which lets one held button chain
// into the next motion input.
type Combination struct {
	Components       []string
	Mode             PressMode
	ReleasePropagate bool
}

// satisfied applies the mode's timing rule to the components' press
// timestamps, given in component declaration order.
func (c *Combination) satisfied(stamps []float64, tolerance float64) bool {
	if len(stamps) < 2 {
		return false
	}

	switch c.Mode {
	case Synchronous:
		sorted := make([]float64, len(stamps))
		copy(sorted, stamps)
		sort.Float64s(sorted)
		mean := (sorted[len(sorted)-1] - sorted[0]) / float64(len(sorted)-1)
		return mean <= tolerance
	case Ordered:
		for i := 1; i < len(stamps); i++ {
			gap := stamps[i] - stamps[i-1]
			if gap < 0 || gap > tolerance {
				return false
			}
		}
		return true
	default:
		return false
	}
}
