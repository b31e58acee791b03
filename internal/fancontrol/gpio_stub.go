//go:build !linux

package fancontrol

import "fmt"

func openGPIO(pin int) (Actuator, error) {
	return nil, fmt.Errorf("fancontrol: gpio backend unsupported on this platform")
}
