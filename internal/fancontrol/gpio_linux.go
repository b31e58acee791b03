//go:build linux

package fancontrol

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/warthog618/go-gpiocdev"
)

// openGPIO returns an Actuator driving the given BCM GPIO line as a
// digital output via the Linux GPIO character device.
//
// This is intended for 2-wire fans behind a transistor/MOSFET, where PWM
// is not available. Any duty > 0 maps to ON, duty == 0 to OFF.
func openGPIO(pin int) (Actuator, error) {
	if pin <= 0 {
		return nil, fmt.Errorf("fancontrol: invalid gpio pin %d", pin)
	}

	// On SBC kernels, header lines are commonly named "GPIO18", etc.
	lineName := fmt.Sprintf("GPIO%d", pin)

	var chipCandidates []string
	entries, _ := os.ReadDir("/dev")
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "gpiochip") {
			chipCandidates = append(chipCandidates, filepath.Join("/dev", e.Name()))
		}
	}

	for _, chipPath := range chipCandidates {
		chip, err := gpiocdev.NewChip(chipPath)
		if err != nil {
			continue
		}
		offset, err := chip.FindLine(lineName)
		if err != nil {
			_ = chip.Close()
			continue
		}
		line, err := chip.RequestLine(offset, gpiocdev.AsOutput(0), gpiocdev.WithConsumer("fanctl"))
		if err != nil {
			_ = chip.Close()
			continue
		}
		return &gpioActuator{chip: chip, line: line}, nil
	}

	return nil, fmt.Errorf("fancontrol: gpio line %q not found (or busy)", lineName)
}

type gpioActuator struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

func (g *gpioActuator) Set(duty int) error {
	if g == nil || g.line == nil {
		return fmt.Errorf("fancontrol: gpio actuator not initialized")
	}
	v := 0
	if duty > 0 {
		v = 1
	}
	return g.line.SetValue(v)
}

func (g *gpioActuator) Close() error {
	if g == nil || g.line == nil {
		return nil
	}
	// Graceful shutdown: turn fan OFF.
	_ = g.line.SetValue(0)
	err := g.line.Close()
	g.line = nil
	if g.chip != nil {
		_ = g.chip.Close()
		g.chip = nil
	}
	return err
}
