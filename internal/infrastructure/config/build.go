package config

import (
	"fmt"

	"github.com/younwookim/combat/internal/domain/combat"
	"github.com/younwookim/combat/internal/domain/input"
	"github.com/younwookim/combat/internal/domain/sequence"
	"github.com/younwookim/combat/internal/infrastructure/device"
)

// BuildEngine constructs the input engine and sequence analyzer from a
// profile, registering every bind, combination, conditional, and sequence
// pattern and wiring the analyzer as the engine's matcher.
func BuildEngine(p *Profile, dev input.Device) (*input.Engine, *sequence.Analyzer, error) {
	engine := input.NewEngine(p.Engine.CombinationToleranceMS / 1000)

	for _, bc := range p.Binds {
		b, err := buildBind(bc, dev)
		if err != nil {
			return nil, nil, err
		}
		if err := engine.Bind(bc.ID, b); err != nil {
			return nil, nil, err
		}
	}

	for _, cc := range p.Combinations {
		mode, err := parseMode(cc.Mode)
		if err != nil {
			return nil, nil, fmt.Errorf("combination %q: %w", cc.ID, err)
		}
		if err := engine.RegisterCombination(cc.ID, cc.Components, mode, cc.ReleasePropagate); err != nil {
			return nil, nil, err
		}
	}

	for _, cc := range p.Conditionals {
		cases := make([]input.ConditionalCase, 0, len(cc.Cases))
		for _, cs := range cc.Cases {
			cases = append(cases, input.ConditionalCase{Condition: cs.Condition, InputID: cs.Input})
		}
		if err := engine.RegisterConditional(cc.ID, cc.Default, cases); err != nil {
			return nil, nil, err
		}
	}

	analyzer := sequence.NewAnalyzer(p.Engine.SequenceMaxGapSec)
	for _, sc := range p.Sequences {
		if err := analyzer.Register(sc.Name, sc.Inputs); err != nil {
			return nil, nil, err
		}
	}
	engine.SetMatcher(analyzer)

	return engine, analyzer, nil
}

// BuildMachine constructs the combat state machine from a profile,
// registering every authored situation tree
func BuildMachine(p *Profile, animator combat.Animator) (*combat.Machine, error) {
	machine := combat.NewMachine(animator, combat.Config{
		BufferSize:   p.Buffer.Size,
		BufferMaxAge: p.Buffer.MaxAgeSec,
	})

	for _, sc := range p.Situations {
		s, err := buildSituation(sc)
		if err != nil {
			return nil, err
		}
		if err := machine.AddSituation(sc.Name, s); err != nil {
			return nil, err
		}
	}

	return machine, nil
}

// buildBind constructs one primitive bind from its config
func buildBind(bc BindConfig, dev input.Device) (*input.Bind, error) {
	switch bc.Kind {
	case "key":
		code, ok := device.KeyFromName(bc.Key)
		if !ok {
			return nil, fmt.Errorf("bind %q: unknown key %q", bc.ID, bc.Key)
		}
		return input.NewKeyBind(dev, code), nil
	case "mouse":
		code, ok := device.MouseButtonFromName(bc.Button)
		if !ok {
			return nil, fmt.Errorf("bind %q: unknown mouse button %q", bc.ID, bc.Button)
		}
		return input.NewMouseButtonBind(dev, code), nil
	case "joyButton":
		return input.NewJoyButtonBind(dev, bc.Device, bc.JoyBtn), nil
	case "joyAxis":
		return input.NewJoyAxisBind(dev, bc.Device, bc.Axis, bc.Deadzone, bc.Positive), nil
	case "action":
		return input.NewActionBind(dev, bc.Action), nil
	default:
		return nil, fmt.Errorf("bind %q: unknown kind %q", bc.ID, bc.Kind)
	}
}

// buildSituation constructs one situation tree, resolving state names to
// arena indices
func buildSituation(sc SituationConfig) (*combat.Situation, error) {
	if len(sc.States) == 0 {
		return nil, fmt.Errorf("situation %q: no states", sc.Name)
	}

	s := combat.NewSituation()
	indices := make(map[string]int, len(sc.States))
	for _, st := range sc.States {
		if st.Name == "" {
			return nil, fmt.Errorf("situation %q: state with empty name", sc.Name)
		}
		if _, ok := indices[st.Name]; ok {
			return nil, fmt.Errorf("situation %q: duplicate state %q", sc.Name, st.Name)
		}
		indices[st.Name] = s.AddState(combat.FighterState{
			Animation:       st.Animation,
			ActiveCondition: st.ActiveCondition,
		})
	}

	for _, tc := range sc.Transitions {
		from, ok := indices[tc.From]
		if !ok {
			return nil, fmt.Errorf("situation %q: transition from unknown state %q", sc.Name, tc.From)
		}
		to, ok := indices[tc.To]
		if !ok {
			return nil, fmt.Errorf("situation %q: transition to unknown state %q", sc.Name, tc.To)
		}
		if err := s.AddTransition(from, tc.On, to, tc.Animation); err != nil {
			return nil, fmt.Errorf("situation %q: %w", sc.Name, err)
		}
	}

	if sc.Active != "" {
		active, ok := indices[sc.Active]
		if !ok {
			return nil, fmt.Errorf("situation %q: unknown active state %q", sc.Name, sc.Active)
		}
		if err := s.SetActive(active); err != nil {
			return nil, fmt.Errorf("situation %q: %w", sc.Name, err)
		}
	}

	return s, nil
}

// parseMode parses a combination press mode name
func parseMode(mode string) (input.PressMode, error) {
	switch mode {
	case "", "synchronous":
		return input.Synchronous, nil
	case "ordered":
		return input.Ordered, nil
	default:
		return 0, fmt.Errorf("unknown press mode %q", mode)
	}
}
