package fancontrol

import "fmt"

// Step is one bracket of a fan curve: temperatures at or below MaxTempC
// command Duty.
type Step struct {
	MaxTempC float64
	Duty     int
}

// Curve is a step function from temperature to PWM duty (0..255).
//
// Steps must be in ascending MaxTempC order. Boundary temperatures belong
// to the lower bracket: DutyFor(40.0) with a step at 40 returns that
// step's duty, not the next one's. There is no hysteresis; a temperature
// oscillating exactly at a boundary makes the duty oscillate too.
type Curve struct {
	Steps []Step
	// MaxDuty is commanded above the last step.
	MaxDuty int
}

// DefaultCurve is the built-in liquid-cooling curve.
func DefaultCurve() Curve {
	return Curve{
		Steps: []Step{
			{MaxTempC: 40.0, Duty: 80},
			{MaxTempC: 50.0, Duty: 128},
			{MaxTempC: 60.0, Duty: 180},
		},
		MaxDuty: 255,
	}
}

// DutyFor returns the duty for tempC. It is total: every temperature maps
// to a duty.
func (c Curve) DutyFor(tempC float64) int {
	for _, s := range c.Steps {
		if tempC <= s.MaxTempC {
			return s.Duty
		}
	}
	return c.MaxDuty
}

// Validate checks step ordering and duty ranges.
func (c Curve) Validate() error {
	if len(c.Steps) == 0 {
		return fmt.Errorf("fancontrol: curve needs at least one step")
	}
	prev := c.Steps[0].MaxTempC
	for i, s := range c.Steps {
		if s.Duty < 0 || s.Duty > 255 {
			return fmt.Errorf("fancontrol: curve step %d duty %d out of range 0..255", i, s.Duty)
		}
		if i > 0 && s.MaxTempC <= prev {
			return fmt.Errorf("fancontrol: curve steps must have ascending max_temp_c (step %d: %v <= %v)",
				i, s.MaxTempC, prev)
		}
		prev = s.MaxTempC
	}
	if c.MaxDuty < 0 || c.MaxDuty > 255 {
		return fmt.Errorf("fancontrol: max duty %d out of range 0..255", c.MaxDuty)
	}
	return nil
}
