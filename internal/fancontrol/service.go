// Package fancontrol implements the temperature-to-duty control loop and
// its fan output backends.
package fancontrol

import (
	"context"
	"log"
	"sync"
	"time"

	"fanctl/internal/hwmon"
)

// Backends selectable via Config.Backend.
const (
	// BackendHwmon drives a pwmN channel of a Super-I/O chip (default).
	BackendHwmon = "hwmon"
	// BackendGPIO switches a 2-wire fan on/off through a GPIO line.
	BackendGPIO = "gpio"
)

// Test seams, following the package convention of swappable vars.
var (
	readTempFn     = hwmon.ReadTemperatureC
	openActuatorFn = openActuator
)

type Config struct {
	// Root is the hwmon class directory.
	Root string
	// TempSensor is the chip name providing temp1_input.
	TempSensor string
	// PWMChips are candidate chip names for the hwmon backend, in
	// preference order.
	PWMChips []string
	// PWMIndex is the 1-based pwmN channel to drive.
	PWMIndex int
	// Interval is the sampling period of the control loop.
	Interval time.Duration
	// Curve maps temperature to duty.
	Curve Curve
	// Backend selects the fan output backend.
	Backend string
	// GPIOPin is the BCM line number for the gpio backend.
	GPIOPin int
}

// Snapshot is the externally visible state of the control loop.
type Snapshot struct {
	Running  bool   `json:"running"`
	Backend  string `json:"backend"`
	PWMIndex int    `json:"pwm_index"`

	TempValid bool    `json:"temp_valid"`
	TempC     float64 `json:"temp_c"`
	Duty      int     `json:"duty"`

	LastUpdateAt time.Time `json:"last_update_utc,omitempty"`
	LastError    string    `json:"last_error,omitempty"`
}

// Service runs the control loop: sample temperature, map it through the
// curve, apply the duty, sleep, repeat.
//
// The loop has no crash resilience: the first failed read or write aborts
// Run and the error propagates to the caller. Restarting is the
// operator's job.
type Service struct {
	cfg Config

	mu   sync.RWMutex
	snap Snapshot

	lastDuty int
	haveDuty bool
}

func New(cfg Config) *Service {
	if cfg.Root == "" {
		cfg.Root = hwmon.DefaultRoot
	}
	if cfg.TempSensor == "" {
		cfg.TempSensor = hwmon.DefaultTempSensor
	}
	if len(cfg.PWMChips) == 0 {
		cfg.PWMChips = hwmon.DefaultPWMChips
	}
	if cfg.PWMIndex == 0 {
		cfg.PWMIndex = 1
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if len(cfg.Curve.Steps) == 0 && cfg.Curve.MaxDuty == 0 {
		cfg.Curve = DefaultCurve()
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendHwmon
	}

	s := &Service{cfg: cfg}
	s.snap.Backend = cfg.Backend
	s.snap.PWMIndex = cfg.PWMIndex
	return s
}

func (s *Service) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Service) setState(update func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	update(&s.snap)
	s.snap.LastUpdateAt = time.Now().UTC()
}

func (s *Service) setErr(msg string) {
	s.setState(func(sn *Snapshot) {
		sn.TempValid = false
		sn.LastError = msg
	})
}

// Run executes the control loop until ctx is canceled (returns nil) or an
// iteration fails (returns the error). The first iteration runs
// immediately; subsequent ones every Interval.
func (s *Service) Run(ctx context.Context) error {
	act, err := openActuatorFn(s.cfg)
	if err != nil {
		s.setErr(err.Error())
		return err
	}
	defer act.Close()

	s.setState(func(sn *Snapshot) { sn.Running = true })
	defer s.setState(func(sn *Snapshot) { sn.Running = false })

	t := time.NewTicker(s.cfg.Interval)
	defer t.Stop()

	for {
		if err := s.step(act); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

func (s *Service) step(act Actuator) error {
	tempC, err := readTempFn(s.cfg.Root, s.cfg.TempSensor)
	if err != nil {
		s.setErr(err.Error())
		return err
	}

	duty := s.cfg.Curve.DutyFor(tempC)
	if err := act.Set(duty); err != nil {
		s.setErr(err.Error())
		return err
	}

	if !s.haveDuty || duty != s.lastDuty {
		log.Printf("fancontrol: temp=%.1fC pwm%d duty=%d", tempC, s.cfg.PWMIndex, duty)
	}
	s.lastDuty = duty
	s.haveDuty = true

	s.setState(func(sn *Snapshot) {
		sn.TempValid = true
		sn.TempC = tempC
		sn.Duty = duty
		sn.LastError = ""
	})
	return nil
}
