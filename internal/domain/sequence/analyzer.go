// Package sequence matches the ordered stream of detected inputs against
// registered identifier patterns: directional motions, charges, and button
// strings.
package sequence

import (
	"fmt"

	"github.com/younwookim/combat/internal/domain/input"
)

// DefaultMaxGap is the maximum time in seconds between consecutive inputs
// of a partial match before it is abandoned
const DefaultMaxGap = 0.5

type node struct {
	children map[string]*node
	// pattern is non-empty on terminal nodes
	pattern string
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// cursor is one live partial match
type cursor struct {
	node *node
	path []string
	last float64
}

// Analyzer is a prefix-tree matcher over detected-input identifier
// sequences. Each registered pattern is a path from the root; one cursor
// per active partial match advances as button presses arrive. A cursor is
// abandoned when an input fails to extend its path or when the gap since
// its last accepted input exceeds maxGap, which bounds partial-match
// accumulation.
type Analyzer struct {
	root    *node
	maxGap  float64
	cursors []*cursor
}

// NewAnalyzer creates an analyzer with the given maximum inter-input gap
// in seconds. A non-positive gap falls back to DefaultMaxGap.
func NewAnalyzer(maxGap float64) *Analyzer {
	if maxGap <= 0 {
		maxGap = DefaultMaxGap
	}
	return &Analyzer{root: newNode(), maxGap: maxGap}
}

// Register adds a pattern as a path through the trie
func (a *Analyzer) Register(name string, ids []string) error {
	if name == "" {
		return fmt.Errorf("sequence: empty pattern name")
	}
	if len(ids) == 0 {
		return fmt.Errorf("sequence %q: empty identifier sequence", name)
	}

	cur := a.root
	for _, id := range ids {
		next, ok := cur.children[id]
		if !ok {
			next = newNode()
			cur.children[id] = next
		}
		cur = next
	}
	if cur.pattern != "" {
		return fmt.Errorf("sequence %q: identifier sequence already registered as %q", name, cur.pattern)
	}
	cur.pattern = name
	return nil
}

// Feed consumes one emitted detected input and reports the matches it
// completes. Only button presses advance cursors; releases and sequence
// events are ignored. Implements input.Matcher.
func (a *Analyzer) Feed(in input.DetectedInput) []input.Match {
	if in.Kind != input.KindButton || !in.Pressed {
		return nil
	}

	live := a.cursors[:0]
	for _, c := range a.cursors {
		if in.At-c.last > a.maxGap {
			continue
		}
		next, ok := c.node.children[in.ID]
		if !ok {
			continue
		}
		c.node = next
		c.path = append(c.path, in.ID)
		c.last = in.At
		live = append(live, c)
	}
	a.cursors = live

	// every press also opens a fresh partial match from the root
	if next, ok := a.root.children[in.ID]; ok {
		a.cursors = append(a.cursors, &cursor{
			node: next,
			path: []string{in.ID},
			last: in.At,
		})
	}

	var matches []input.Match
	live = a.cursors[:0]
	for _, c := range a.cursors {
		if c.node.pattern != "" {
			matches = append(matches, input.Match{
				Name:     c.node.pattern,
				Sequence: append([]string(nil), c.path...),
			})
		}
		// a matched cursor survives only if a longer pattern extends it
		if c.node.pattern == "" || len(c.node.children) > 0 {
			live = append(live, c)
		}
	}
	a.cursors = live

	return matches
}

// Reset abandons every live partial match
func (a *Analyzer) Reset() {
	a.cursors = nil
}
