package fancontrol

import (
	"fmt"
	"log"

	"fanctl/internal/hwmon"
)

// Actuator is the minimal interface the control loop needs from a fan
// output backend. Duty is 0..255 (hwmon convention).
//
// Close should be best-effort and leave the fan in a safe state.
type Actuator interface {
	Set(duty int) error
	Close() error
}

type hwmonActuator struct {
	ctl   *hwmon.Controller
	index int
}

// openHwmonActuator locates a supported PWM chip and binds one channel.
func openHwmonActuator(root string, candidates []string, index int) (Actuator, error) {
	ctl, err := hwmon.OpenController(root, candidates)
	if err != nil {
		return nil, err
	}
	dev := ctl.Device()
	log.Printf("fancontrol: using %s (%s)", dev.Name, dev.Path)
	return &hwmonActuator{ctl: ctl, index: index}, nil
}

func (a *hwmonActuator) Set(duty int) error {
	_, err := a.ctl.SetPWM(a.index, duty)
	return err
}

// Close leaves the channel in manual mode at the last commanded duty.
// Operators hand control back with `fanctl mode N auto`.
func (a *hwmonActuator) Close() error { return nil }

func openActuator(cfg Config) (Actuator, error) {
	switch cfg.Backend {
	case "", BackendHwmon:
		return openHwmonActuator(cfg.Root, cfg.PWMChips, cfg.PWMIndex)
	case BackendGPIO:
		return openGPIO(cfg.GPIOPin)
	default:
		return nil, fmt.Errorf("fancontrol: unknown backend %q", cfg.Backend)
	}
}
