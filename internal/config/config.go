package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"fanctl/internal/fancontrol"
	"fanctl/internal/hwmon"
)

type Config struct {
	Hwmon  HwmonConfig  `yaml:"hwmon"`
	Daemon DaemonConfig `yaml:"daemon"`
	Curve  CurveConfig  `yaml:"curve"`
}

// Duration accepts "5s"-style YAML scalars (yaml.v3 has no built-in
// time.Duration decoding).
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

type HwmonConfig struct {
	Root       string   `yaml:"root"`
	TempSensor string   `yaml:"temp_sensor"`
	PWMChips   []string `yaml:"pwm_chips"`
}

type DaemonConfig struct {
	PWMIndex   int      `yaml:"pwm_index"`
	Interval   Duration `yaml:"interval"`
	Backend    string   `yaml:"backend"`
	GPIOPin    int      `yaml:"gpio_pin"`
	LockFile   string   `yaml:"lock_file"`
	StatusAddr string   `yaml:"status_addr"`
}

type CurveConfig struct {
	Steps   []CurveStep `yaml:"steps"`
	MaxDuty int         `yaml:"max_duty"`
}

type CurveStep struct {
	MaxTempC float64 `yaml:"max_temp_c"`
	Duty     int     `yaml:"duty"`
}

// Curve converts the configured steps into a control curve.
func (c CurveConfig) Curve() fancontrol.Curve {
	out := fancontrol.Curve{MaxDuty: c.MaxDuty}
	for _, s := range c.Steps {
		out.Steps = append(out.Steps, fancontrol.Step{MaxTempC: s.MaxTempC, Duty: s.Duty})
	}
	return out
}

// Load reads the YAML config at path and fills in defaults. An empty path
// returns the built-in defaults, so every command works without a config
// file; a path that was given explicitly must exist.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if cfg.Hwmon.Root == "" {
		cfg.Hwmon.Root = hwmon.DefaultRoot
	}
	if cfg.Hwmon.TempSensor == "" {
		cfg.Hwmon.TempSensor = hwmon.DefaultTempSensor
	}
	if len(cfg.Hwmon.PWMChips) == 0 {
		cfg.Hwmon.PWMChips = hwmon.DefaultPWMChips
	}

	if cfg.Daemon.PWMIndex == 0 {
		cfg.Daemon.PWMIndex = 1
	}
	if cfg.Daemon.PWMIndex < 1 {
		return Config{}, fmt.Errorf("daemon.pwm_index must be >= 1")
	}
	if cfg.Daemon.Interval <= 0 {
		cfg.Daemon.Interval = Duration(5 * time.Second)
	}
	switch cfg.Daemon.Backend {
	case "":
		cfg.Daemon.Backend = fancontrol.BackendHwmon
	case fancontrol.BackendHwmon, fancontrol.BackendGPIO:
	default:
		return Config{}, fmt.Errorf("daemon.backend must be %q or %q", fancontrol.BackendHwmon, fancontrol.BackendGPIO)
	}
	if cfg.Daemon.Backend == fancontrol.BackendGPIO && cfg.Daemon.GPIOPin <= 0 {
		return Config{}, fmt.Errorf("daemon.gpio_pin is required for the gpio backend")
	}
	if cfg.Daemon.LockFile == "" {
		cfg.Daemon.LockFile = "/run/fanctl.lock"
	}

	if len(cfg.Curve.Steps) == 0 {
		for _, s := range fancontrol.DefaultCurve().Steps {
			cfg.Curve.Steps = append(cfg.Curve.Steps, CurveStep{MaxTempC: s.MaxTempC, Duty: s.Duty})
		}
	}
	if cfg.Curve.MaxDuty == 0 {
		cfg.Curve.MaxDuty = fancontrol.DefaultCurve().MaxDuty
	}
	if err := cfg.Curve.Curve().Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
