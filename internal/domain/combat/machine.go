package combat

import (
	"fmt"
	"log"

	"github.com/younwookim/combat/internal/domain/input"
)

// Animator is the external animation playback surface. Playback completion
// arrives back through Machine.AnimationFinished; that notification is the
// machine's only suspension point.
type Animator interface {
	Play(name string)
	PlayBackwards(name string)
	HasAnimation(name string) bool
}

// Config holds the machine's input buffer knobs
type Config struct {
	BufferSize   int
	BufferMaxAge float64
}

// Machine is the combat state machine. It owns one situation tree per
// named combat context, advances the current situation's state on detected
// or buffered inputs, and reverts to the situation's active state when a
// state's animation completes without its active condition holding.
type Machine struct {
	animator Animator

	situations map[string]*Situation
	current    string

	buffer     *Buffer
	frameState FrameState

	// transitionAnim is the transition animation currently playing, empty
	// when none; pendingAnim chains in when it finishes. entryTransition
	// remembers how the current state was entered so a revert can mirror
	// the motion backwards.
	transitionAnim  string
	pendingAnim     string
	entryTransition string

	conditionSource func(name string) bool

	onAdvanced []func(state *FighterState, transitionAnim string)
	onReverted []func(state *FighterState, transitionAnim string)
}

// NewMachine creates a machine playing through the given animator
func NewMachine(animator Animator, cfg Config) *Machine {
	return &Machine{
		animator:   animator,
		situations: make(map[string]*Situation),
		buffer:     NewBuffer(cfg.BufferSize, cfg.BufferMaxAge),
	}
}

// OnAdvanced registers an observer for state advances
func (m *Machine) OnAdvanced(fn func(state *FighterState, transitionAnim string)) {
	m.onAdvanced = append(m.onAdvanced, fn)
}

// OnReverted registers an observer for state reverts
func (m *Machine) OnReverted(fn func(state *FighterState, transitionAnim string)) {
	m.onReverted = append(m.onReverted, fn)
}

// SetConditionSource points active-condition checks at an external
// condition lookup, typically the input engine's condition set
func (m *Machine) SetConditionSource(fn func(name string) bool) {
	m.conditionSource = fn
}

// SetFrameState records where the fighter is in its current action's
// frame data
func (m *Machine) SetFrameState(fs FrameState) {
	m.frameState = fs
}

// FrameState returns the fighter's current frame state
func (m *Machine) FrameState() FrameState {
	return m.frameState
}

// AddSituation registers a situation tree under name and wires its
// advance/revert signals to the machine. Empty names, duplicate names, and
// situations already registered under another name are rejected with no
// mutation.
func (m *Machine) AddSituation(name string, s *Situation) error {
	if name == "" {
		return fmt.Errorf("situation: empty name")
	}
	if s == nil {
		return fmt.Errorf("situation %q: nil situation", name)
	}
	if _, ok := m.situations[name]; ok {
		return fmt.Errorf("situation %q: name already registered", name)
	}
	for existing, es := range m.situations {
		if es == s {
			return fmt.Errorf("situation %q: already registered as %q", name, existing)
		}
	}

	s.onAdvanced = m.handleAdvanced
	s.onReverted = m.handleReverted
	m.situations[name] = s
	return nil
}

// RemoveSituation unregisters a situation. If it was current, the current
// pointer is cleared; there is no implicit fallback situation.
func (m *Machine) RemoveSituation(name string) {
	s, ok := m.situations[name]
	if !ok {
		log.Printf("combat: remove of unknown situation %q", name)
		return
	}
	s.onAdvanced = nil
	s.onReverted = nil
	delete(m.situations, name)
	if m.current == name {
		m.current = ""
	}
}

// SetSituation makes the named situation current and plays its current
// state's animation. Unknown names log a warning and change nothing.
func (m *Machine) SetSituation(name string) {
	s, ok := m.situations[name]
	if !ok {
		log.Printf("combat: set of unknown situation %q", name)
		return
	}
	m.current = name
	m.transitionAnim = ""
	m.pendingAnim = ""
	m.entryTransition = ""
	if cur := s.Current(); cur != nil {
		m.playAnimation(cur.Animation)
	}
}

// Situation returns the registered situation under name, or nil
func (m *Machine) Situation(name string) *Situation {
	return m.situations[name]
}

// CurrentSituation returns the current situation, or nil when none is set
func (m *Machine) CurrentSituation() *Situation {
	if m.current == "" {
		return nil
	}
	return m.situations[m.current]
}

// CurrentSituationName returns the current situation's registered name
func (m *Machine) CurrentSituationName() string {
	return m.current
}

// CurrentState returns the current situation's current state, or nil
func (m *Machine) CurrentState() *FighterState {
	s := m.CurrentSituation()
	if s == nil {
		return nil
	}
	return s.Current()
}

// TransitionAnimation returns the transition animation currently playing,
// or the empty string when none is
func (m *Machine) TransitionAnimation() string {
	return m.transitionAnim
}

// BufferInput queues a detected input for the current state to consume
// once the fighter is idle or recovering
func (m *Machine) BufferInput(in input.DetectedInput) {
	m.buffer.Push(in)
}

// Buffered returns the number of inputs waiting in the buffer
func (m *Machine) Buffered() int {
	return m.buffer.Len()
}

// Transition attempts to advance the current situation along an edge
// triggered by the input's identifier
func (m *Machine) Transition(in input.DetectedInput) bool {
	s := m.CurrentSituation()
	if s == nil {
		return false
	}
	return s.advance(in.ID)
}

// Update runs one tick: refresh the current situation's active-condition
// lookup, consume the oldest buffered input if the frame state allows it,
// then age the remaining buffer entries, dropping the expired ones.
func (m *Machine) Update(dt float64) {
	s := m.CurrentSituation()

	if s != nil && m.conditionSource != nil {
		for i := 0; i < s.Len(); i++ {
			if c := s.State(i).ActiveCondition; c != "" {
				s.SetCondition(c, m.conditionSource(c))
			}
		}
	}

	if s != nil && m.buffer.Len() > 0 && m.frameState.canConsumeBuffer() {
		if in, ok := m.buffer.Pop(); ok {
			m.Transition(in)
		}
	}

	m.buffer.Age(dt)
}

// AnimationFinished is the inbound completion notification from the
// animation subsystem. A finishing transition animation chains into the
// pending state animation; a finishing state animation triggers the revert
// check.
func (m *Machine) AnimationFinished(name string) {
	if m.transitionAnim != "" {
		if name != m.transitionAnim {
			return
		}
		m.transitionAnim = ""
		pending := m.pendingAnim
		m.pendingAnim = ""
		m.playAnimation(pending)
		return
	}

	s := m.CurrentSituation()
	if s == nil {
		return
	}
	cur := s.Current()
	if cur == nil || name != cur.Animation {
		return
	}
	if cur == s.Active() {
		return
	}
	if cur.ActiveCondition != "" && s.Condition(cur.ActiveCondition) {
		return
	}
	s.revert()
}

// handleAdvanced plays a completed transition's animations: the transition
// animation first when one is named, chaining into the target state's own
// animation, otherwise the target's animation directly.
func (m *Machine) handleAdvanced(target *FighterState, transitionAnim string) {
	m.transitionAnim = ""
	m.pendingAnim = ""
	m.entryTransition = ""

	if transitionAnim != "" && m.animator != nil && m.animator.HasAnimation(transitionAnim) {
		m.transitionAnim = transitionAnim
		m.entryTransition = transitionAnim
		m.pendingAnim = target.Animation
		m.animator.Play(transitionAnim)
	} else {
		m.playAnimation(target.Animation)
	}

	for _, fn := range m.onAdvanced {
		fn(target, transitionAnim)
	}
}

// handleReverted returns playback to the active state. When the reverted
// state was entered through a transition animation, that animation replays
// backwards first to mirror the entry motion, then chains into the active
// state's animation.
func (m *Machine) handleReverted(target *FighterState) {
	trans := m.entryTransition
	m.entryTransition = ""
	m.transitionAnim = ""
	m.pendingAnim = ""

	if trans != "" && m.animator != nil && m.animator.HasAnimation(trans) {
		m.transitionAnim = trans
		m.pendingAnim = target.Animation
		m.animator.PlayBackwards(trans)
	} else {
		m.playAnimation(target.Animation)
	}

	for _, fn := range m.onReverted {
		fn(target, trans)
	}
}

// playAnimation plays one animation, logging and skipping names the
// animator does not know
func (m *Machine) playAnimation(name string) {
	if name == "" || m.animator == nil {
		return
	}
	if !m.animator.HasAnimation(name) {
		log.Printf("combat: no animation %q", name)
		return
	}
	m.animator.Play(name)
}
