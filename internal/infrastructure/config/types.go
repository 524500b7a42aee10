// Package config loads fighter input profiles from YAML and builds the
// runtime engine, analyzer, and state machine from them.
package config

// Profile is one fighter's authored input and combat configuration
type Profile struct {
	Engine       EngineConfig        `yaml:"engine"`
	Buffer       BufferConfig        `yaml:"buffer"`
	Binds        []BindConfig        `yaml:"binds"`
	Combinations []CombinationConfig `yaml:"combinations"`
	Conditionals []ConditionalConfig `yaml:"conditionals"`
	Sequences    []SequenceConfig    `yaml:"sequences"`
	Situations   []SituationConfig   `yaml:"situations"`
}

// EngineConfig holds the detection engine knobs
type EngineConfig struct {
	// CombinationToleranceMS is the combination press tolerance in
	// milliseconds, default 30
	CombinationToleranceMS float64 `yaml:"combinationToleranceMs"`
	// SequenceMaxGapSec is the maximum gap between sequence inputs in
	// seconds, default 0.5
	SequenceMaxGapSec float64 `yaml:"sequenceMaxGapSec"`
}

// BufferConfig holds the state machine's input buffer knobs
type BufferConfig struct {
	Size      int     `yaml:"size"`      // default 2
	MaxAgeSec float64 `yaml:"maxAgeSec"` // default 0.3
}

// BindConfig describes one primitive bind. Kind selects the physical
// source: key, mouse, joyButton, joyAxis, or action.
type BindConfig struct {
	ID     string `yaml:"id"`
	Kind   string `yaml:"kind"`
	Key    string `yaml:"key"`
	Button string `yaml:"button"`
	Action string `yaml:"action"`

	Device   int     `yaml:"device"`
	JoyBtn   int     `yaml:"joyButton"`
	Axis     int     `yaml:"axis"`
	Deadzone float64 `yaml:"deadzone"`
	Positive bool    `yaml:"positive"`
}

// CombinationConfig describes one combination input
type CombinationConfig struct {
	ID               string   `yaml:"id"`
	Components       []string `yaml:"components"`
	Mode             string   `yaml:"mode"` // synchronous or ordered
	ReleasePropagate bool     `yaml:"releasePropagate"`
}

// ConditionalCaseConfig maps a condition name to the aliased input
type ConditionalCaseConfig struct {
	Condition string `yaml:"condition"`
	Input     string `yaml:"input"`
}

// ConditionalConfig describes one conditional input
type ConditionalConfig struct {
	ID      string                  `yaml:"id"`
	Default string                  `yaml:"default"`
	Cases   []ConditionalCaseConfig `yaml:"cases"`
}

// SequenceConfig describes one sequence pattern
type SequenceConfig struct {
	Name   string   `yaml:"name"`
	Inputs []string `yaml:"inputs"`
}

// TransitionConfig describes one edge of a situation's state tree, by
// state name
type TransitionConfig struct {
	From      string `yaml:"from"`
	On        string `yaml:"on"`
	To        string `yaml:"to"`
	Animation string `yaml:"animation"`
}

// StateConfig describes one fighter state
type StateConfig struct {
	Name            string `yaml:"name"`
	Animation       string `yaml:"animation"`
	ActiveCondition string `yaml:"activeCondition"`
}

// SituationConfig describes one situation tree. The first state is the
// root; Active names the revert target and defaults to the first state.
type SituationConfig struct {
	Name        string             `yaml:"name"`
	Active      string             `yaml:"active"`
	States      []StateConfig      `yaml:"states"`
	Transitions []TransitionConfig `yaml:"transitions"`
}
