// Package script evaluates authored condition expressions with tengo.
// Each condition is a boolean expression over named game facts, compiled
// once and re-run every tick to refresh the input engine's condition set.
package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// resultVar receives each expression's value inside the compiled script
const resultVar = "__result"

// Conditions compiles and evaluates named condition expressions. Facts
// must be declared before the expressions that read them.
type Conditions struct {
	facts map[string]any

	order    []string
	compiled map[string]*tengo.Compiled
}

// NewConditions creates an empty condition evaluator
func NewConditions() *Conditions {
	return &Conditions{
		facts:    make(map[string]any),
		compiled: make(map[string]*tengo.Compiled),
	}
}

// DeclareFact declares a named game fact with its initial value
func (c *Conditions) DeclareFact(name string, value any) {
	c.facts[name] = value
}

// SetFact updates a declared fact; compiled conditions pick the value up
// on their next evaluation
func (c *Conditions) SetFact(name string, value any) error {
	if _, ok := c.facts[name]; !ok {
		return fmt.Errorf("script: fact %q not declared", name)
	}
	c.facts[name] = value
	for _, compiled := range c.compiled {
		// a condition that doesn't read this fact rejects the set; that
		// is not an error
		_ = compiled.Set(name, value)
	}
	return nil
}

// Define compiles a condition expression. The expression may read any
// declared fact and the math and text stdlib modules.
func (c *Conditions) Define(name, expr string) error {
	if name == "" {
		return fmt.Errorf("script: empty condition name")
	}
	if _, ok := c.compiled[name]; ok {
		return fmt.Errorf("script: condition %q already defined", name)
	}

	src := fmt.Sprintf("%s := (%s)", resultVar, expr)
	s := tengo.NewScript([]byte(src))
	s.SetImports(stdlib.GetModuleMap("math", "text"))
	for fact, value := range c.facts {
		if err := s.Add(fact, value); err != nil {
			return fmt.Errorf("script: condition %q: fact %q: %w", name, fact, err)
		}
	}

	compiled, err := s.Compile()
	if err != nil {
		return fmt.Errorf("script: condition %q: %w", name, err)
	}

	c.compiled[name] = compiled
	c.order = append(c.order, name)
	return nil
}

// Eval re-runs every condition in definition order and hands each result
// to apply, typically the engine's SetCondition
func (c *Conditions) Eval(apply func(name string, value bool)) error {
	for _, name := range c.order {
		compiled := c.compiled[name]
		if err := compiled.Run(); err != nil {
			return fmt.Errorf("script: condition %q: %w", name, err)
		}
		v := compiled.Get(resultVar)
		apply(name, !v.IsUndefined() && v.Bool())
	}
	return nil
}
