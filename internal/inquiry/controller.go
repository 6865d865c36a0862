package inquiry

// Controller walks the wizard steps in order. The zero value starts on the
// first step.
type Controller struct {
	current    Step
	generation int
}

// Current returns the step being shown.
func (c *Controller) Current() Step {
	if !c.current.Valid() {
		return FirstStep
	}
	return c.current
}

// Generation increases on every step change. Renderers compare it to know
// when to reset focus.
func (c *Controller) Generation() int {
	return c.generation
}

// CanAdvance reports whether Advance would succeed.
func (c *Controller) CanAdvance(r *Record) bool {
	cur := c.Current()
	return cur < LastStep && IsValid(cur, r)
}

// Advance moves to the next step if the current one is valid. The final step
// never advances.
func (c *Controller) Advance(r *Record) error {
	cur := c.Current()
	if cur >= LastStep {
		return ErrFinalStep
	}
	if !IsValid(cur, r) {
		return blocked(cur, r)
	}
	c.moveTo(cur + 1)
	return nil
}

// Retreat moves to the previous step. Entered values are kept.
func (c *Controller) Retreat() error {
	cur := c.Current()
	if cur <= FirstStep {
		return ErrFirstStep
	}
	c.moveTo(cur - 1)
	return nil
}

// Reset returns to the first step.
func (c *Controller) Reset() {
	c.moveTo(FirstStep)
}

func (c *Controller) moveTo(s Step) {
	c.current = s
	c.generation++
}
