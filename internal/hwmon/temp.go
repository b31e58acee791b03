package hwmon

// DefaultTempSensor is the chip reporting CPU package temperature on AMD
// systems (the k10temp kernel driver).
const DefaultTempSensor = "k10temp"

const tempInputAttr = "temp1_input"

// ReadTemperatureC locates the chip whose name attribute equals sensor and
// reads its temp1_input attribute.
//
// The kernel exposes the value as a signed integer in milli-degrees
// Celsius (e.g. 45000 for 45.0 C).
func ReadTemperatureC(root, sensor string) (float64, error) {
	dev, err := Find(root, sensor)
	if err != nil {
		return 0, err
	}
	milli, err := dev.ReadIntAttr(tempInputAttr)
	if err != nil {
		return 0, err
	}
	return float64(milli) / 1000.0, nil
}
