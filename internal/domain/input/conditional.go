package input

// ConditionalCase maps one named boolean condition to the input the
// conditional aliases while that condition holds
type ConditionalCase struct {
	Condition string
	InputID   string
}

// Conditional is a composite input that dynamically aliases to one of
// several underlying inputs. Cases are tested in declaration order each
// frame, first true wins, otherwise the default applies. The selection
// recomputed during one tick only takes effect on the next.
type Conditional struct {
	DefaultID string
	Cases     []ConditionalCase

	current    string
	wasPressed bool
}

// CurrentInput returns the identifier the conditional currently aliases to
func (c *Conditional) CurrentInput() string {
	return c.current
}

// selectInput picks the input for the next frame from the condition set
func (c *Conditional) selectInput(conditions map[string]bool) {
	next := c.DefaultID
	for _, cs := range c.Cases {
		if conditions[cs.Condition] {
			next = cs.InputID
			break
		}
	}
	c.current = next
}
