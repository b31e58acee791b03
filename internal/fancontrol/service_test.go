package fancontrol

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeActuator struct {
	duties []int
	setErr error
	closed bool
	dutyCh chan int
}

func (a *fakeActuator) Set(duty int) error {
	if a.setErr != nil {
		return a.setErr
	}
	a.duties = append(a.duties, duty)
	if a.dutyCh != nil {
		select {
		case a.dutyCh <- duty:
		default:
		}
	}
	return nil
}

func (a *fakeActuator) Close() error {
	a.closed = true
	return nil
}

func withFakes(t *testing.T, act Actuator, temps func() (float64, error)) {
	t.Helper()
	oldOpen := openActuatorFn
	oldRead := readTempFn
	openActuatorFn = func(cfg Config) (Actuator, error) { return act, nil }
	readTempFn = func(root, sensor string) (float64, error) { return temps() }
	t.Cleanup(func() {
		openActuatorFn = oldOpen
		readTempFn = oldRead
	})
}

func TestServiceRun_AppliesCurveDuty(t *testing.T) {
	fake := &fakeActuator{dutyCh: make(chan int, 8)}
	withFakes(t, fake, func() (float64, error) { return 45.0, nil })

	svc := New(Config{Interval: 5 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	select {
	case duty := <-fake.dutyCh:
		if duty != 128 {
			t.Fatalf("duty=%d want 128 for 45C", duty)
		}
	case <-time.After(time.Second):
		t.Fatalf("no duty applied")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run after cancel: %v", err)
	}
	if !fake.closed {
		t.Fatalf("actuator not closed")
	}

	snap := svc.Snapshot()
	if snap.Running {
		t.Fatalf("snapshot still running")
	}
	if !snap.TempValid || snap.TempC != 45.0 || snap.Duty != 128 {
		t.Fatalf("snapshot=%+v", snap)
	}
}

func TestServiceRun_FirstIterationIsImmediate(t *testing.T) {
	fake := &fakeActuator{dutyCh: make(chan int, 1)}
	withFakes(t, fake, func() (float64, error) { return 30.0, nil })

	// Huge interval: only the immediate first iteration can deliver.
	svc := New(Config{Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	select {
	case duty := <-fake.dutyCh:
		if duty != 80 {
			t.Fatalf("duty=%d want 80 for 30C", duty)
		}
	case <-time.After(time.Second):
		t.Fatalf("first iteration did not run immediately")
	}
	cancel()
	<-done
}

func TestServiceRun_TempErrorAborts(t *testing.T) {
	fake := &fakeActuator{}
	readErr := errors.New("sensor gone")
	withFakes(t, fake, func() (float64, error) { return 0, readErr })

	svc := New(Config{Interval: 5 * time.Millisecond})
	err := svc.Run(context.Background())
	if !errors.Is(err, readErr) {
		t.Fatalf("err=%v want %v", err, readErr)
	}
	if len(fake.duties) != 0 {
		t.Fatalf("no duty should be applied after a failed read")
	}
	if svc.Snapshot().LastError == "" {
		t.Fatalf("snapshot should record the error")
	}
}

func TestServiceRun_SetErrorAborts(t *testing.T) {
	setErr := errors.New("write failed")
	fake := &fakeActuator{setErr: setErr}
	withFakes(t, fake, func() (float64, error) { return 70.0, nil })

	svc := New(Config{Interval: 5 * time.Millisecond})
	err := svc.Run(context.Background())
	if !errors.Is(err, setErr) {
		t.Fatalf("err=%v want %v", err, setErr)
	}
}

func TestServiceRun_OpenActuatorError(t *testing.T) {
	openErr := errors.New("no chip")
	oldOpen := openActuatorFn
	openActuatorFn = func(cfg Config) (Actuator, error) { return nil, openErr }
	t.Cleanup(func() { openActuatorFn = oldOpen })

	svc := New(Config{})
	if err := svc.Run(context.Background()); !errors.Is(err, openErr) {
		t.Fatalf("err=%v want %v", err, openErr)
	}
}

func TestNew_Defaults(t *testing.T) {
	svc := New(Config{})
	if svc.cfg.Root == "" || svc.cfg.TempSensor != "k10temp" {
		t.Fatalf("cfg=%+v", svc.cfg)
	}
	if svc.cfg.PWMIndex != 1 || svc.cfg.Interval != 5*time.Second {
		t.Fatalf("cfg=%+v", svc.cfg)
	}
	if svc.cfg.Backend != BackendHwmon {
		t.Fatalf("backend=%q", svc.cfg.Backend)
	}
	if got := svc.cfg.Curve.DutyFor(70.0); got != 255 {
		t.Fatalf("default curve DutyFor(70)=%d want 255", got)
	}
	snap := svc.Snapshot()
	if snap.PWMIndex != 1 || snap.Backend != BackendHwmon {
		t.Fatalf("snapshot=%+v", snap)
	}
}
