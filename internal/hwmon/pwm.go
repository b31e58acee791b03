package hwmon

import (
	"fmt"
	"strconv"
)

// DefaultPWMChips lists the Super-I/O chip families exposing the nct6775
// register layout, in preference order. The first one present wins.
//
// Nuvoton datasheet: NCT6796D; kernel docs: hwmon/nct6775.
var DefaultPWMChips = []string{"nct6799", "nct6775", "nct7802", "as99127f"}

// maxOutputs is the highest PWM/fan index the nct6775 family exposes.
const maxOutputs = 7

// defaultMaxScale is the duty full-scale assumed when pwmN_max is absent.
const defaultMaxScale = 255

// Mode is a PWM channel's control mode, decoded from pwmN_enable.
type Mode string

const (
	ModeManual  Mode = "manual"
	ModeAuto    Mode = "auto"
	ModeUnknown Mode = "unknown"
)

// ParseMode validates a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeManual, ModeAuto:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("hwmon: mode must be %q or %q, got %q: %w",
			ModeManual, ModeAuto, s, ErrInvalidInput)
	}
}

func (m Mode) enableValue() string {
	if m == ModeAuto {
		return "2"
	}
	return "1"
}

func decodeEnable(s string) Mode {
	switch s {
	case "1":
		return ModeManual
	case "2":
		return ModeAuto
	default:
		return ModeUnknown
	}
}

// PWMState describes one PWM output channel.
type PWMState struct {
	Index   int
	Value   int
	Percent float64
	Mode    Mode
}

// FanState is one fan tach reading.
type FanState struct {
	Index int
	RPM   int
}

// Controller drives the PWM outputs of a located Super-I/O chip.
type Controller struct {
	dev Device
}

// OpenController locates the first chip under root matching candidates.
func OpenController(root string, candidates []string) (*Controller, error) {
	dev, err := FindAny(root, candidates)
	if err != nil {
		return nil, err
	}
	return &Controller{dev: dev}, nil
}

// Device returns the underlying chip directory.
func (c *Controller) Device() Device { return c.dev }

// PWMs enumerates channels 1..7 that expose both pwmN and pwmN_enable.
// Channels with missing attributes are skipped silently; a value that
// fails to parse reads as 0.
func (c *Controller) PWMs() ([]PWMState, error) {
	var out []PWMState
	for i := 1; i <= maxOutputs; i++ {
		pwmAttr := fmt.Sprintf("pwm%d", i)
		enableAttr := fmt.Sprintf("pwm%d_enable", i)
		if !c.dev.HasAttr(pwmAttr) || !c.dev.HasAttr(enableAttr) {
			continue
		}
		raw, err := c.dev.ReadAttr(pwmAttr)
		if err != nil {
			return nil, err
		}
		value, convErr := strconv.Atoi(raw)
		if convErr != nil {
			value = 0
		}
		enable, err := c.dev.ReadAttr(enableAttr)
		if err != nil {
			return nil, err
		}
		max := c.maxScale(i)
		out = append(out, PWMState{
			Index:   i,
			Value:   value,
			Percent: float64(value) / float64(max) * 100.0,
			Mode:    decodeEnable(enable),
		})
	}
	return out, nil
}

// Fans enumerates fan tach inputs 1..7. Missing indices are skipped.
func (c *Controller) Fans() ([]FanState, error) {
	var out []FanState
	for i := 1; i <= maxOutputs; i++ {
		attr := fmt.Sprintf("fan%d_input", i)
		if !c.dev.HasAttr(attr) {
			continue
		}
		rpm, err := c.dev.ReadIntAttr(attr)
		if err != nil {
			return nil, err
		}
		out = append(out, FanState{Index: i, RPM: rpm})
	}
	return out, nil
}

// SetPWM switches channel index to manual control and writes value to it.
// It returns the resulting duty as a percentage of the channel's scale.
//
// The enable write goes first: the chip ignores a duty write while the
// channel is under automatic control. If the value write fails after the
// enable write succeeded, the channel is left in manual mode with its old
// duty; there is no rollback.
func (c *Controller) SetPWM(index, value int) (float64, error) {
	enableAttr := fmt.Sprintf("pwm%d_enable", index)
	pwmAttr := fmt.Sprintf("pwm%d", index)

	if err := c.dev.WriteAttr(enableAttr, "1"); err != nil {
		return 0, err
	}
	if err := c.dev.WriteAttr(pwmAttr, fmt.Sprintf("%d", value)); err != nil {
		return 0, err
	}
	return float64(value) / float64(c.maxScale(index)) * 100.0, nil
}

// SetMode writes the enable attribute for channel index. The mode must
// come from ParseMode; nothing is written for an invalid mode.
func (c *Controller) SetMode(index int, mode Mode) error {
	if mode != ModeManual && mode != ModeAuto {
		return fmt.Errorf("hwmon: mode %q: %w", mode, ErrInvalidInput)
	}
	return c.dev.WriteAttr(fmt.Sprintf("pwm%d_enable", index), mode.enableValue())
}

// maxScale returns pwmN_max if present and parseable, else 255.
func (c *Controller) maxScale(index int) int {
	attr := fmt.Sprintf("pwm%d_max", index)
	if !c.dev.HasAttr(attr) {
		return defaultMaxScale
	}
	max, err := c.dev.ReadIntAttr(attr)
	if err != nil || max <= 0 {
		return defaultMaxScale
	}
	return max
}
