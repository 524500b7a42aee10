package input

import (
	"fmt"
	"log"
)

// DefaultTolerance is the combination press tolerance in seconds (30ms)
const DefaultTolerance = 0.03

// detection is an open press record awaiting release
type detection struct {
	id string
	at float64
}

// Engine owns every bind, combination, and conditional by identifier, runs
// the per-frame detection protocol, and emits DetectedInput events. One
// engine instance exists per fighter; all registration and queries are
// validated synchronously and the engine keeps ticking regardless of
// authoring mistakes.
type Engine struct {
	tolerance float64

	binds            map[string]*Bind
	bindOrder        []string
	combinations     map[string]*Combination
	combinationOrder []string
	conditionals     map[string]*Conditional
	conditionalOrder []string

	conditions map[string]bool

	// open press records and the set of identifiers whose emission is
	// suppressed, either because they were absorbed into a satisfied
	// combination or because they already emitted this press
	open    map[string]*detection
	ignored map[string]struct{}

	// releases closed during the current tick, in close order
	closed []DetectedInput

	matcher   Matcher
	observers []func(DetectedInput)

	now float64
}

// NewEngine creates an engine with the given combination press tolerance
// in seconds. A non-positive tolerance falls back to DefaultTolerance.
func NewEngine(tolerance float64) *Engine {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Engine{
		tolerance:    tolerance,
		binds:        make(map[string]*Bind),
		combinations: make(map[string]*Combination),
		conditionals: make(map[string]*Conditional),
		conditions:   make(map[string]bool),
		open:         make(map[string]*detection),
		ignored:      make(map[string]struct{}),
	}
}

// Now returns the engine's accumulated simulation time in seconds
func (e *Engine) Now() float64 {
	return e.now
}

// Subscribe registers an observer for every emitted DetectedInput
func (e *Engine) Subscribe(fn func(DetectedInput)) {
	e.observers = append(e.observers, fn)
}

// SetMatcher attaches the sequence analyzer. Every emitted button input is
// delivered to it synchronously before observers see the event.
func (e *Engine) SetMatcher(m Matcher) {
	e.matcher = m
}

// used reports whether id already denotes a bind, combination, or
// conditional. Identifiers are unique across all three namespaces.
func (e *Engine) used(id string) bool {
	if _, ok := e.binds[id]; ok {
		return true
	}
	if _, ok := e.combinations[id]; ok {
		return true
	}
	_, ok := e.conditionals[id]
	return ok
}

// references returns the identifiers a registered composite refers to
func (e *Engine) references(id string) []string {
	if c, ok := e.combinations[id]; ok {
		return c.Components
	}
	if c, ok := e.conditionals[id]; ok {
		refs := make([]string, 0, len(c.Cases)+1)
		refs = append(refs, c.DefaultID)
		for _, cs := range c.Cases {
			refs = append(refs, cs.InputID)
		}
		return refs
	}
	return nil
}

// createsCycle walks the composite reference graph from each of refs and
// reports whether id is reachable, i.e. whether registering id with those
// references would close a cycle.
func (e *Engine) createsCycle(id string, refs []string) bool {
	visited := make(map[string]struct{})
	stack := append([]string(nil), refs...)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == id {
			return true
		}
		if _, ok := visited[cur]; ok {
			continue
		}
		visited[cur] = struct{}{}
		stack = append(stack, e.references(cur)...)
	}
	return false
}

// Bind registers a primitive bind under id. The registration fails, with
// no mutation, if id already denotes any bind, combination, or conditional.
func (e *Engine) Bind(id string, b *Bind) error {
	if id == "" {
		return fmt.Errorf("bind: empty identifier")
	}
	if e.used(id) {
		return fmt.Errorf("bind %q: identifier already registered", id)
	}
	if b == nil {
		return fmt.Errorf("bind %q: nil bind", id)
	}

	e.binds[id] = b
	e.bindOrder = append(e.bindOrder, id)
	return nil
}

// RegisterCombination registers a composite over two or more component
// binds. Components must already be registered primitive binds; composites
// and conditionals are rejected as members.
func (e *Engine) RegisterCombination(id string, components []string, mode PressMode, releasePropagate bool) error {
	if id == "" {
		return fmt.Errorf("combination: empty identifier")
	}
	if e.used(id) {
		return fmt.Errorf("combination %q: identifier already registered", id)
	}
	if len(components) < 2 {
		return fmt.Errorf("combination %q: needs at least 2 components, got %d", id, len(components))
	}
	for _, comp := range components {
		if comp == id {
			return fmt.Errorf("combination %q: references itself", id)
		}
		if _, ok := e.conditionals[comp]; ok {
			return fmt.Errorf("combination %q: component %q is a conditional", id, comp)
		}
		if _, ok := e.binds[comp]; !ok {
			return fmt.Errorf("combination %q: component %q is not a registered bind", id, comp)
		}
	}
	if e.createsCycle(id, components) {
		return fmt.Errorf("combination %q: cyclic reference", id)
	}

	e.combinations[id] = &Combination{
		Components:       append([]string(nil), components...),
		Mode:             mode,
		ReleasePropagate: releasePropagate,
	}
	e.combinationOrder = append(e.combinationOrder, id)
	return nil
}

// RegisterConditional registers a composite that aliases to defaultID, or
// to the input of the first case whose condition holds. The default and
// every mapped input must already be a registered bind or combination.
func (e *Engine) RegisterConditional(id string, defaultID string, cases []ConditionalCase) error {
	if id == "" {
		return fmt.Errorf("conditional: empty identifier")
	}
	if e.used(id) {
		return fmt.Errorf("conditional %q: identifier already registered", id)
	}

	refs := make([]string, 0, len(cases)+1)
	refs = append(refs, defaultID)
	for _, cs := range cases {
		refs = append(refs, cs.InputID)
	}
	for _, ref := range refs {
		if ref == id {
			return fmt.Errorf("conditional %q: references itself", id)
		}
		_, isBind := e.binds[ref]
		_, isCombination := e.combinations[ref]
		if !isBind && !isCombination {
			return fmt.Errorf("conditional %q: input %q is not a registered bind or combination", id, ref)
		}
	}
	if e.createsCycle(id, refs) {
		return fmt.Errorf("conditional %q: cyclic reference", id)
	}

	c := &Conditional{
		DefaultID: defaultID,
		Cases:     append([]ConditionalCase(nil), cases...),
	}
	c.selectInput(e.conditions)
	e.conditionals[id] = c
	e.conditionalOrder = append(e.conditionalOrder, id)
	return nil
}

// SetCondition sets one named boolean in the condition set
func (e *Engine) SetCondition(name string, value bool) {
	e.conditions[name] = value
}

// SetConditions replaces the whole condition set
func (e *Engine) SetConditions(conditions map[string]bool) {
	e.conditions = make(map[string]bool, len(conditions))
	for name, v := range conditions {
		e.conditions[name] = v
	}
}

// ClearConditions empties the condition set
func (e *Engine) ClearConditions() {
	e.conditions = make(map[string]bool)
}

// Condition returns one named boolean from the condition set
func (e *Engine) Condition(name string) bool {
	return e.conditions[name]
}

// IsPressed reports whether the input registered under id has an open
// press. Unknown identifiers log a warning and read unpressed.
func (e *Engine) IsPressed(id string) bool {
	if !e.used(id) {
		log.Printf("input: query for unknown identifier %q", id)
		return false
	}
	_, ok := e.open[id]
	return ok
}

// CurrentInput returns the identifier a conditional currently aliases to.
// Unknown identifiers log a warning and return the empty string.
func (e *Engine) CurrentInput(id string) string {
	c, ok := e.conditionals[id]
	if !ok {
		log.Printf("input: query for unknown conditional %q", id)
		return ""
	}
	return c.CurrentInput()
}

// Update runs one tick of the detection protocol, advancing the engine
// clock by dt seconds. Phases execute in fixed order: bind edges,
// combinations, conditionals, then emission. Binds are polled at the end
// of the tick.
func (e *Engine) Update(dt float64) {
	e.now += dt

	e.updateBinds()
	e.updateCombinations()
	e.updateConditionals()
	e.emitAll()

	for _, id := range e.bindOrder {
		e.binds[id].Poll()
	}
}

// updateBinds opens a press record on every just-pressed bind and closes
// the record of every just-released one.
func (e *Engine) updateBinds() {
	for _, id := range e.bindOrder {
		b := e.binds[id]
		if b.IsJustPressed() {
			e.open[id] = &detection{id: id, at: e.now}
		}
		if b.IsJustReleased() {
			e.close(id)
		}
	}
}

// updateCombinations opens a combination once all of its components are
// pressed and the mode's timing rule holds, absorbing the components into
// the ignore-set. A combination whose components are no longer all pressed
// closes; with ReleasePropagate the still-held components are restamped to
// now and released from the ignore-set so they read as freshly pressed.
func (e *Engine) updateCombinations() {
	for _, id := range e.combinationOrder {
		c := e.combinations[id]
		_, selfOpen := e.open[id]

		stamps := make([]float64, 0, len(c.Components))
		allOpen := true
		for _, comp := range c.Components {
			rec, ok := e.open[comp]
			if !ok {
				allOpen = false
				break
			}
			stamps = append(stamps, rec.at)
		}

		switch {
		case allOpen && !selfOpen:
			if c.satisfied(stamps, e.tolerance) {
				e.open[id] = &detection{id: id, at: e.now}
				for _, comp := range c.Components {
					e.ignored[comp] = struct{}{}
				}
			}
		case !allOpen && selfOpen:
			e.close(id)
			if c.ReleasePropagate {
				for _, comp := range c.Components {
					if rec, ok := e.open[comp]; ok {
						rec.at = e.now
						delete(e.ignored, comp)
					}
				}
			}
		}
	}
}

// updateConditionals derives press and release edges on each conditional's
// currently selected input, then recomputes the selection for the next
// frame. Condition changes therefore never retarget a conditional mid-tick.
func (e *Engine) updateConditionals() {
	for _, id := range e.conditionalOrder {
		c := e.conditionals[id]

		_, pressed := e.open[c.current]
		if pressed && !c.wasPressed {
			e.open[id] = &detection{id: id, at: e.now}
		}
		if !pressed && c.wasPressed {
			e.close(id)
		}
		c.wasPressed = pressed

		c.selectInput(e.conditions)
	}
}

// close ends the open press record under id, removes it from the
// ignore-set, and queues its release event
func (e *Engine) close(id string) {
	rec, ok := e.open[id]
	if !ok {
		return
	}
	delete(e.open, id)
	delete(e.ignored, id)
	e.closed = append(e.closed, DetectedInput{
		Kind:    KindButton,
		ID:      id,
		At:      e.now,
		Pressed: false,
		Held:    e.now - rec.at,
		Binds:   e.snapshot(id),
	})
}

// emitAll publishes this tick's releases, then every open record not yet
// in the ignore-set. Emitted opens join the ignore-set so a press is
// reported exactly once.
func (e *Engine) emitAll() {
	for _, ev := range e.closed {
		e.emit(ev)
	}
	e.closed = e.closed[:0]

	for _, id := range e.emitOrder() {
		rec, ok := e.open[id]
		if !ok {
			continue
		}
		if _, skip := e.ignored[id]; skip {
			continue
		}
		e.ignored[id] = struct{}{}
		e.emit(DetectedInput{
			Kind:    KindButton,
			ID:      id,
			At:      rec.at,
			Pressed: true,
			Binds:   e.snapshot(id),
		})
	}
}

// emitOrder fixes the emission order of open records: binds, then
// combinations, then conditionals, each in registration order
func (e *Engine) emitOrder() []string {
	order := make([]string, 0, len(e.bindOrder)+len(e.combinationOrder)+len(e.conditionalOrder))
	order = append(order, e.bindOrder...)
	order = append(order, e.combinationOrder...)
	order = append(order, e.conditionalOrder...)
	return order
}

// emit feeds the event to the sequence matcher, publishes it, then
// publishes any sequence matches it completed. A match is always reported
// after its constituent button detections and is never re-fed.
func (e *Engine) emit(ev DetectedInput) {
	var matches []Match
	if e.matcher != nil {
		matches = e.matcher.Feed(ev)
	}

	for _, fn := range e.observers {
		fn(ev)
	}
	for _, m := range matches {
		seq := DetectedInput{
			Kind:     KindSequence,
			ID:       m.Name,
			At:       e.now,
			Pressed:  true,
			Sequence: m.Sequence,
		}
		for _, fn := range e.observers {
			fn(seq)
		}
	}
}

// snapshot copies the pressed state of every bind contributing to id
func (e *Engine) snapshot(id string) []BindSnapshot {
	if b, ok := e.binds[id]; ok {
		return []BindSnapshot{{ID: id, Pressed: b.IsPressed()}}
	}
	if c, ok := e.combinations[id]; ok {
		snaps := make([]BindSnapshot, 0, len(c.Components))
		for _, comp := range c.Components {
			snaps = append(snaps, e.snapshot(comp)...)
		}
		return snaps
	}
	if c, ok := e.conditionals[id]; ok {
		return e.snapshot(c.current)
	}
	return nil
}
