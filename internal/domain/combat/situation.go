package combat

import "fmt"

// transition is one outgoing edge of a fighter state: trigger input
// identifier to target state index, with an optional intermediate animation
type transition struct {
	trigger   string
	target    int
	animation string
}

// FighterState is one node in a situation's state tree
type FighterState struct {
	// Animation is the state's own animation identifier
	Animation string
	// ActiveCondition, when non-empty, gates whether the state persists
	// after its animation completes
	ActiveCondition string

	transitions []transition
}

// Situation is a rooted tree of fighter states for one combat context,
// such as grounded or airborne. States live in an indexed arena; the
// current, root, and active states are indices into it, so the tree can be
// read freely without lifetime concerns. The first added state is the root
// and the initial current and active state.
type Situation struct {
	states  []FighterState
	current int
	active  int

	conditions map[string]bool

	// wired by the owning machine at registration
	onAdvanced func(target *FighterState, transitionAnim string)
	onReverted func(target *FighterState)
}

// NewSituation creates an empty situation
func NewSituation() *Situation {
	return &Situation{conditions: make(map[string]bool)}
}

// AddState appends a state to the arena and returns its index
func (s *Situation) AddState(st FighterState) int {
	s.states = append(s.states, st)
	return len(s.states) - 1
}

// AddTransition adds an edge from one state to another, triggered by the
// given input identifier, optionally through a transition animation.
func (s *Situation) AddTransition(from int, trigger string, to int, transitionAnim string) error {
	if from < 0 || from >= len(s.states) {
		return fmt.Errorf("situation: no state at index %d", from)
	}
	if to < 0 || to >= len(s.states) {
		return fmt.Errorf("situation: no state at index %d", to)
	}
	if trigger == "" {
		return fmt.Errorf("situation: empty trigger")
	}
	for _, t := range s.states[from].transitions {
		if t.trigger == trigger {
			return fmt.Errorf("situation: state %d already transitions on %q", from, trigger)
		}
	}

	s.states[from].transitions = append(s.states[from].transitions, transition{
		trigger:   trigger,
		target:    to,
		animation: transitionAnim,
	})
	return nil
}

// SetActive designates the state reverts return to
func (s *Situation) SetActive(index int) error {
	if index < 0 || index >= len(s.states) {
		return fmt.Errorf("situation: no state at index %d", index)
	}
	s.active = index
	return nil
}

// Root returns the root state
func (s *Situation) Root() *FighterState {
	return s.State(0)
}

// Current returns the current state
func (s *Situation) Current() *FighterState {
	return s.State(s.current)
}

// CurrentIndex returns the current state's arena index
func (s *Situation) CurrentIndex() int {
	return s.current
}

// Active returns the designated active state
func (s *Situation) Active() *FighterState {
	return s.State(s.active)
}

// State returns the state at the given arena index, or nil
func (s *Situation) State(index int) *FighterState {
	if index < 0 || index >= len(s.states) {
		return nil
	}
	return &s.states[index]
}

// Len returns the number of states in the arena
func (s *Situation) Len() int {
	return len(s.states)
}

// SetCondition sets one named boolean in the situation's condition lookup
func (s *Situation) SetCondition(name string, value bool) {
	s.conditions[name] = value
}

// Condition returns one named boolean from the situation's condition lookup
func (s *Situation) Condition(name string) bool {
	return s.conditions[name]
}

// advance follows the current state's edge for trigger, if any, making its
// target the current state and firing the advanced signal
func (s *Situation) advance(trigger string) bool {
	cur := s.Current()
	if cur == nil {
		return false
	}
	for _, t := range cur.transitions {
		if t.trigger != trigger {
			continue
		}
		s.current = t.target
		if s.onAdvanced != nil {
			s.onAdvanced(s.State(t.target), t.animation)
		}
		return true
	}
	return false
}

// revert returns to the designated active state and fires the reverted
// signal
func (s *Situation) revert() {
	s.current = s.active
	if s.onReverted != nil {
		s.onReverted(s.Active())
	}
}
