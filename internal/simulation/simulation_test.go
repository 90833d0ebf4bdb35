package simulation

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/szymonmasternak/elevator-dispatch/internal/config"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevrequest"
	"github.com/szymonmasternak/elevator-dispatch/internal/logger"
)

const TEST_DELAY = time.Millisecond

func testConfig() config.Config {
	c := config.Default()
	c.Floors = 10
	c.Elevators = 2
	c.TravelTime = TEST_DELAY
	c.PollInterval = TEST_DELAY
	c.IdleInterval = TEST_DELAY
	c.RequestInterval = TEST_DELAY
	c.RequestCount = 5
	c.Seed = 1
	return c
}

func waitFor(t *testing.T, condition func() bool, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !condition() {
		if time.Now().After(deadline) {
			t.Fatalf("Condition not met within %v", timeout)
		}
		time.Sleep(TEST_DELAY)
	}
}

func TestNewInvalidConfig(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	c := testConfig()
	c.Elevators = 0

	if _, err := New(c); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("New() error = %v, expected %v", err, config.ErrInvalidConfig)
	}
}

func TestSubmitValidation(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	s, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() returned error %v", err)
	}

	cases := []struct {
		origin      int
		destination int
		expected    error
	}{
		{4, 4, elevrequest.ErrDegenerateRequest},
		{-1, 3, elevrequest.ErrNegativeFloor},
		{2, 10, elevrequest.ErrFloorOutOfRange},
		{2, 9, nil},
	}

	for _, tc := range cases {
		if err := s.Submit(tc.origin, tc.destination); !errors.Is(err, tc.expected) {
			t.Errorf("Submit(%d, %d) error = %v, expected %v", tc.origin, tc.destination, err, tc.expected)
		}
	}

	if s.Building().Pending() != 1 {
		t.Errorf("Pending() = %d, expected only the valid request queued", s.Building().Pending())
	}
	if s.Stats().Submitted != 1 {
		t.Errorf("Stats().Submitted = %d, expected 1", s.Stats().Submitted)
	}
}

func TestRandomRequest(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	s, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() returned error %v", err)
	}

	for i := 0; i < 1000; i++ {
		origin, destination := s.randomRequest()
		if origin == destination {
			t.Fatalf("randomRequest() = %d->%d, expected distinct floors", origin, destination)
		}
		if origin < 0 || origin >= 10 || destination < 0 || destination >= 10 {
			t.Fatalf("randomRequest() = %d->%d, expected floors in [0, 10)", origin, destination)
		}
	}
}

func TestSimulationRun(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	s, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() returned error %v", err)
	}

	if err := s.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Stop() before Start() error = %v, expected %v", err, ErrNotRunning)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start() returned error %v", err)
	}
	if err := s.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Second Start() error = %v, expected %v", err, ErrAlreadyRunning)
	}

	select {
	case <-s.DriverDone():
	case <-time.After(5 * time.Second):
		t.Fatalf("Driver did not finish")
	}
	waitFor(t, s.Idle, 10*time.Second)

	if err := s.Stop(); err != nil {
		t.Errorf("Stop() returned error %v", err)
	}

	stats := s.Stats()
	if stats.Submitted != 5 || stats.Scheduled != 5 {
		t.Errorf("Stats() = %v, expected 5 submitted and 5 scheduled", stats.String())
	}
	travelled := 0
	for _, floors := range stats.FloorsTravelled {
		travelled += floors
	}
	if travelled == 0 || stats.Movements == 0 {
		t.Errorf("Stats() = %v, expected the fleet to have moved", stats.String())
	}

	metadata := s.Metadata()
	if len(metadata.RunID) != RUN_ID_LEN || metadata.Seed != 1 || metadata.StartedAt.IsZero() {
		t.Errorf("Metadata() = %v, expected run id, seed 1 and start time", metadata.String())
	}
}

func TestStatsIsCopy(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	s, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() returned error %v", err)
	}

	stats := s.Stats()
	stats.FloorsTravelled[0] = 99
	if s.Stats().FloorsTravelled[0] != 0 {
		t.Errorf("Stats() shares FloorsTravelled with the simulator")
	}
}
