package selection

// Controller holds the current selection of one configuration session and
// routes events through a Machine. It is not safe for concurrent use.
type Controller struct {
	machine *Machine
	state   Selection
	last    Outcome
}

// NewController creates a controller in the initial state
func NewController(m *Machine) *Controller {
	s, out := m.Initial()
	return &Controller{machine: m, state: s, last: out}
}

// NewSeededController creates a controller from a saved plan
func NewSeededController(m *Machine, ids []string, bundleID string) (*Controller, error) {
	s, out, err := m.Seed(ids, bundleID)
	if err != nil {
		return nil, err
	}
	return &Controller{machine: m, state: s, last: out}, nil
}

// Toggle adds or removes a module and leaves bundle mode
func (c *Controller) Toggle(moduleID string) (Outcome, error) {
	return c.apply(Toggle(moduleID))
}

// SelectBundle switches to a bundle's module set and price
func (c *Controller) SelectBundle(bundleID string) (Outcome, error) {
	return c.apply(SelectBundle(bundleID))
}

// Reset returns to the baseline-only custom selection
func (c *Controller) Reset() Outcome {
	out, _ := c.apply(Reset())
	return out
}

// Current returns the outcome of the last transition
func (c *Controller) Current() Outcome {
	return c.last
}

// Selection returns the current selection
func (c *Controller) Selection() Selection {
	return c.state.clone()
}

func (c *Controller) apply(e Event) (Outcome, error) {
	next, out, err := c.machine.Apply(c.state, e)
	if err != nil {
		return c.last, err
	}
	c.state = next
	c.last = out
	return out, nil
}
