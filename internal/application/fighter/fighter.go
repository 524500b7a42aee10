// Package fighter wires one fighter's full pipeline: condition scripts,
// input engine, sequence analyzer, combat state machine, and animator,
// ticked together once per simulation frame.
package fighter

import (
	"log"

	"github.com/younwookim/combat/internal/application/anim"
	"github.com/younwookim/combat/internal/application/script"
	"github.com/younwookim/combat/internal/domain/combat"
	"github.com/younwookim/combat/internal/domain/input"
	"github.com/younwookim/combat/internal/domain/sequence"
	"github.com/younwookim/combat/internal/infrastructure/config"
)

// Fighter owns one fighter's input and combat pipeline
type Fighter struct {
	Engine     *input.Engine
	Analyzer   *sequence.Analyzer
	Machine    *combat.Machine
	Animator   *anim.Animator
	Conditions *script.Conditions
}

// New builds a fighter from a profile. Detected presses and sequence
// matches fan out to the machine's input buffer; animation completions
// feed back into the machine; active-condition checks read the engine's
// condition set.
func New(profile *config.Profile, dev input.Device) (*Fighter, error) {
	engine, analyzer, err := config.BuildEngine(profile, dev)
	if err != nil {
		return nil, err
	}

	animator := anim.New()
	machine, err := config.BuildMachine(profile, animator)
	if err != nil {
		return nil, err
	}

	f := &Fighter{
		Engine:     engine,
		Analyzer:   analyzer,
		Machine:    machine,
		Animator:   animator,
		Conditions: script.NewConditions(),
	}

	animator.SetOnFinished(machine.AnimationFinished)
	machine.SetConditionSource(engine.Condition)
	engine.Subscribe(func(in input.DetectedInput) {
		// releases carry no transition triggers; presses and sequence
		// matches are queued for the state machine
		if in.Pressed {
			machine.BufferInput(in)
		}
	})

	return f, nil
}

// Update runs one simulation frame in pipeline order: scripted conditions,
// input detection, state machine, then animation playback.
func (f *Fighter) Update(dt float64) {
	if err := f.Conditions.Eval(f.Engine.SetCondition); err != nil {
		log.Printf("fighter: %v", err)
	}
	f.Engine.Update(dt)
	f.Machine.Update(dt)
	f.Animator.Update(dt)
}
