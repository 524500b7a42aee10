package input

// Kind tags the variant of a DetectedInput
type Kind int

const (
	// KindButton is a press or release of a bind, combination, or conditional
	KindButton Kind = iota
	// KindSequence is a sequence-pattern match reported by the analyzer
	KindSequence
)

// String returns the string representation of the detection kind
func (k Kind) String() string {
	switch k {
	case KindButton:
		return "Button"
	case KindSequence:
		return "Sequence"
	default:
		return "Unknown"
	}
}

// BindSnapshot copies one contributing bind's pressed state at detection
// time. Snapshots are duplicated rather than shared since binds mutate
// every frame.
type BindSnapshot struct {
	ID      string
	Pressed bool
}

// DetectedInput is an immutable record of one detection event
type DetectedInput struct {
	Kind    Kind
	ID      string
	At      float64 // engine time of detection, seconds
	Pressed bool
	Held    float64 // press duration, release events only
	Binds   []BindSnapshot

	// Sequence is the literal identifier path that matched, KindSequence only
	Sequence []string
}

// Match is one sequence-pattern match reported by a Matcher
type Match struct {
	Name     string
	Sequence []string
}

// Matcher consumes emitted button inputs in arrival order and reports any
// sequence-pattern matches they complete. Sequence inputs are never re-fed.
type Matcher interface {
	Feed(in DetectedInput) []Match
}
