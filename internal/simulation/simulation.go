package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/szymonmasternak/elevator-dispatch/internal/building"
	"github.com/szymonmasternak/elevator-dispatch/internal/config"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevevent"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevrequest"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevutils"
	"github.com/szymonmasternak/elevator-dispatch/internal/logger"
	"github.com/szymonmasternak/elevator-dispatch/internal/scheduler"
	"github.com/szymonmasternak/elevator-dispatch/internal/simmetadata"
	"github.com/xyproto/randomstring"
)

var Log = logger.GetLogger()

var (
	ErrAlreadyRunning = errors.New("simulation is already running")
	ErrNotRunning     = errors.New("simulation is not running")
)

const (
	RUN_ID_LEN        = 10
	EVENT_BUFFER_SIZE = 256
)

// Simulator owns the building, the scheduler and the request driver of a
// single run.
type Simulator struct {
	config    config.Config
	building  *building.Building
	scheduler *scheduler.Scheduler
	events    chan elevevent.ElevatorEvent
	metaData  simmetadata.RunMetaData
	rng       *rand.Rand //driver goroutine only

	lifecycleMu      sync.Mutex
	running          bool
	cancelDriver     context.CancelFunc
	cancelElevators  context.CancelFunc
	cancelCollector  context.CancelFunc
	driverWaitGroup  sync.WaitGroup
	fleetWaitGroup   sync.WaitGroup
	collectWaitGroup sync.WaitGroup
	driverDone       chan struct{}

	statsMu    sync.Mutex
	stats      Stats
	lastFloors map[int]int
}

func New(cfg config.Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	events := make(chan elevevent.ElevatorEvent, EVENT_BUFFER_SIZE)
	b := building.NewBuilding(cfg.ElevatorConfig(), events)

	s := &Simulator{
		config:    cfg,
		building:  b,
		scheduler: scheduler.NewScheduler(b, cfg.PollInterval, events),
		events:    events,
		metaData: simmetadata.RunMetaData{
			SoftwareVersion: elevutils.GetGitHash(),
			RunID:           randomstring.EnglishFrequencyString(RUN_ID_LEN),
			Floors:          cfg.Floors,
			Elevators:       cfg.Elevators,
			Seed:            seed,
		},
		rng:        rand.New(rand.NewSource(seed)),
		driverDone: make(chan struct{}),
		stats:      Stats{FloorsTravelled: map[int]int{}},
		lastFloors: map[int]int{},
	}
	return s, nil
}

// Start brings up the collector, the cars, the scheduler and the driver,
// in that order. A simulator runs once, a Start after Stop fails because
// the fleet is already built.
func (s *Simulator) Start() error {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}

	collectCtx, cancelCollector := context.WithCancel(context.Background())
	fleetCtx, cancelElevators := context.WithCancel(context.Background())

	if err := s.building.InitializeElevators(fleetCtx, &s.fleetWaitGroup, s.config.Elevators); err != nil {
		cancelCollector()
		cancelElevators()
		return fmt.Errorf("start simulation: %w", err)
	}

	s.collectWaitGroup.Add(1)
	go s.collect(collectCtx)

	if err := s.scheduler.Start(fleetCtx, &s.fleetWaitGroup); err != nil {
		cancelElevators()
		s.fleetWaitGroup.Wait()
		cancelCollector()
		s.collectWaitGroup.Wait()
		return fmt.Errorf("start simulation: %w", err)
	}

	driverCtx, cancelDriver := context.WithCancel(context.Background())
	s.driverWaitGroup.Add(1)
	go s.drive(driverCtx)

	s.cancelDriver = cancelDriver
	s.cancelElevators = cancelElevators
	s.cancelCollector = cancelCollector
	s.running = true
	s.metaData.StartedAt = time.Now()

	Log.Info().Str("run", s.metaData.RunID).Msgf("Started simulation with %s", s.metaData.Fleet())
	return nil
}

// Stop shuts down in reverse start order. Cars stop where they are, legs in
// progress are not completed.
func (s *Simulator) Stop() error {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()
	if !s.running {
		return ErrNotRunning
	}

	s.cancelDriver()
	s.driverWaitGroup.Wait()

	if err := s.scheduler.Stop(); err != nil {
		Log.Error().Err(err).Msg("Stopping scheduler")
	}

	s.cancelElevators()
	s.fleetWaitGroup.Wait()

	s.cancelCollector()
	s.collectWaitGroup.Wait()

	s.running = false
	Log.Info().Str("run", s.metaData.RunID).Msgf("Stopped simulation: %s", s.Stats().String())
	return nil
}

// Submit validates and queues a call request.
func (s *Simulator) Submit(origin int, destination int) error {
	req, err := elevrequest.NewBounded(origin, destination, s.config.Floors)
	if err != nil {
		return err
	}
	s.building.Submit(req)

	s.statsMu.Lock()
	s.stats.Submitted++
	s.statsMu.Unlock()

	Log.Info().Msgf("Submitted call request %v", req)
	return nil
}

// DriverDone is closed once the driver goroutine returns, after its last
// request or when stopped early.
func (s *Simulator) DriverDone() <-chan struct{} {
	return s.driverDone
}

// Idle reports whether the queue is empty and every car is stationary.
func (s *Simulator) Idle() bool {
	if s.building.Pending() > 0 {
		return false
	}
	for _, snap := range s.building.Snapshots() {
		if !snap.Idle() {
			return false
		}
	}
	return true
}

func (s *Simulator) Building() *building.Building {
	return s.building
}

func (s *Simulator) Metadata() simmetadata.RunMetaData {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()
	return s.metaData
}
