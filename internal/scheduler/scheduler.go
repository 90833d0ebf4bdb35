package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/szymonmasternak/elevator-dispatch/internal/building"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevconsts"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevevent"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevrequest"
	"github.com/szymonmasternak/elevator-dispatch/internal/logger"
)

var Log = logger.GetLogger()

var (
	ErrAlreadyRunning = errors.New("scheduler is already running")
	ErrNotRunning     = errors.New("scheduler is not running")
)

// Scheduler assigns queued call requests to cars, one at a time, head first.
type Scheduler struct {
	building     *building.Building
	pollInterval time.Duration
	events       chan<- elevevent.ElevatorEvent

	//held from fetch through selection and path installation to removal
	scheduleMu sync.Mutex

	lifecycleMu sync.Mutex
	running     bool
	cancel      context.CancelFunc
	done        chan struct{}
}

// NewScheduler polls b every pollInterval, events may be nil.
func NewScheduler(b *building.Building, pollInterval time.Duration, events chan<- elevevent.ElevatorEvent) *Scheduler {
	if pollInterval <= 0 {
		pollInterval = elevconsts.DEFAULT_POLL_INTERVAL
	}
	return &Scheduler{
		building:     b,
		pollInterval: pollInterval,
		events:       events,
	}
}

// Start runs the poll loop until Stop is called or ctx ends.
func (s *Scheduler) Start(ctx context.Context, waitGroup *sync.WaitGroup) error {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.running = true

	Log.Info().Msg("Started the scheduler")

	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		defer close(done)
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				Log.Warn().Msg("Scheduler loop has been signaled to stop")
				return
			case <-ticker.C:
			case <-s.building.Wake():
			}
			s.Tick(loopCtx)
		}
	}()
	return nil
}

// Stop signals the loop and waits for it to return. Cancelling the context
// given to Start also ends the loop, Stop is then still needed before a
// new Start.
func (s *Scheduler) Stop() error {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()
	if !s.running {
		return ErrNotRunning
	}

	Log.Info().Msg("Stopping the scheduler")
	s.cancel()
	<-s.done
	s.running = false
	return nil
}

// Tick tries to schedule the head of the queue once. A request that finds
// no car stays at the head and is retried on the next tick.
func (s *Scheduler) Tick(ctx context.Context) bool {
	s.scheduleMu.Lock()
	defer s.scheduleMu.Unlock()

	req, ok := s.building.Fetch()
	if !ok {
		return false
	}

	Log.Debug().Str("request", req.String()).Msg("Scheduling call request")
	if !s.scheduleLocked(ctx, req) {
		return false
	}
	if !s.building.RemoveHeadIf(req) {
		Log.Error().Str("request", req.String()).Msg("Scheduled call request was no longer at the head of the queue")
		return false
	}
	Log.Debug().Str("request", req.String()).Msg("Successfully scheduled call request")
	return true
}

// Schedule picks a car for req and installs the path on it.
func (s *Scheduler) Schedule(ctx context.Context, req elevrequest.CallRequest) bool {
	s.scheduleMu.Lock()
	defer s.scheduleMu.Unlock()
	return s.scheduleLocked(ctx, req)
}

func (s *Scheduler) scheduleLocked(ctx context.Context, req elevrequest.CallRequest) bool {
	snapshots := s.building.Snapshots()
	chosen, ok := Select(req, snapshots)
	if !ok {
		Log.Debug().Str("request", req.String()).Int("elevators", len(snapshots)).Msg("No eligible elevator")
		return false
	}

	elev := s.building.Elevator(chosen.ID)
	if elev == nil {
		Log.Error().Int("elevator", chosen.ID).Msg("Selected elevator is not in the building")
		return false
	}
	if err := elev.AssignIfUnchanged(req, chosen.Version); err != nil {
		Log.Debug().Err(err).Int("elevator", chosen.ID).Str("request", req.String()).Msg("Assignment refused, retrying next tick")
		return false
	}

	Log.Info().Int("elevator", chosen.ID).Msgf("%v scheduled to elevator %d", req, chosen.ID)
	s.emit(ctx, elevevent.AssignmentEvent{ElevatorID: chosen.ID, Request: req}.Wrap())
	return true
}

func (s *Scheduler) emit(ctx context.Context, event elevevent.ElevatorEvent) {
	if s.events == nil {
		return
	}
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}
