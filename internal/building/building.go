package building

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/szymonmasternak/elevator-dispatch/internal/elevator"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevevent"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevrequest"
	"github.com/szymonmasternak/elevator-dispatch/internal/logger"
)

var Log = logger.GetLogger()

var (
	ErrAlreadyInitialized   = errors.New("elevators are already initialized")
	ErrInvalidElevatorCount = errors.New("elevator count must not be negative")
)

// Building is the dispatch registry shared by the scheduler, the cars
// and whoever submits requests.
type Building struct {
	queueMu sync.Mutex
	pending []elevrequest.CallRequest
	wake    chan struct{}

	fleetMu     sync.RWMutex
	elevators   []*elevator.Elevator
	initialised bool

	elevatorConfig elevator.Config
	events         chan<- elevevent.ElevatorEvent
}

// NewBuilding wires cars created later by InitializeElevators to
// elevatorConfig and events, events may be nil.
func NewBuilding(elevatorConfig elevator.Config, events chan<- elevevent.ElevatorEvent) *Building {
	return &Building{
		wake:           make(chan struct{}, 1),
		elevatorConfig: elevatorConfig,
		events:         events,
	}
}

// Submit appends req to the tail of the queue and wakes the scheduler.
func (b *Building) Submit(req elevrequest.CallRequest) {
	b.queueMu.Lock()
	b.pending = append(b.pending, req)
	b.queueMu.Unlock()

	Log.Debug().Str("request", req.String()).Msg("Call request submitted")

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Wake fires after a submit, at most one signal is buffered.
func (b *Building) Wake() <-chan struct{} {
	return b.wake
}

// Fetch peeks at the head of the queue, non-blocking.
func (b *Building) Fetch() (elevrequest.CallRequest, bool) {
	b.queueMu.Lock()
	defer b.queueMu.Unlock()
	if len(b.pending) == 0 {
		return elevrequest.CallRequest{}, false
	}
	return b.pending[0], true
}

// RemoveHead pops the head of the queue, no-op when empty.
func (b *Building) RemoveHead() {
	b.queueMu.Lock()
	defer b.queueMu.Unlock()
	b.removeHeadLocked()
}

// RemoveHeadIf pops the head only when it is req.
func (b *Building) RemoveHeadIf(req elevrequest.CallRequest) bool {
	b.queueMu.Lock()
	defer b.queueMu.Unlock()
	if len(b.pending) == 0 || b.pending[0] != req {
		return false
	}
	b.removeHeadLocked()
	return true
}

func (b *Building) removeHeadLocked() {
	if len(b.pending) == 0 {
		return
	}
	b.pending[0] = elevrequest.CallRequest{}
	b.pending = b.pending[1:]
}

// Pending returns the queue length.
func (b *Building) Pending() int {
	b.queueMu.Lock()
	defer b.queueMu.Unlock()
	return len(b.pending)
}

// PendingRequests returns a copy of the queue, head first.
func (b *Building) PendingRequests() []elevrequest.CallRequest {
	b.queueMu.Lock()
	defer b.queueMu.Unlock()
	return append([]elevrequest.CallRequest(nil), b.pending...)
}

// InitializeElevators creates cars 0..count-1 and starts their loops.
func (b *Building) InitializeElevators(ctx context.Context, waitGroup *sync.WaitGroup, count int) error {
	if count < 0 {
		return fmt.Errorf("initialize %d elevators: %w", count, ErrInvalidElevatorCount)
	}

	b.fleetMu.Lock()
	defer b.fleetMu.Unlock()
	if b.initialised {
		return ErrAlreadyInitialized
	}

	Log.Debug().Msgf("Initializing %d elevators", count)
	elevators := make([]*elevator.Elevator, 0, count)
	for id := 0; id < count; id++ {
		elev := elevator.NewElevator(id, b.elevatorConfig, b.events)
		elev.Start(ctx, waitGroup)
		elevators = append(elevators, elev)
	}
	b.elevators = elevators
	b.initialised = true
	return nil
}

// AddElevators publishes cars that are already built, without starting them.
func (b *Building) AddElevators(elevators ...*elevator.Elevator) error {
	b.fleetMu.Lock()
	defer b.fleetMu.Unlock()
	if b.initialised {
		return ErrAlreadyInitialized
	}
	b.elevators = append([]*elevator.Elevator(nil), elevators...)
	b.initialised = true
	return nil
}

// Elevators returns the live cars in id order.
func (b *Building) Elevators() []*elevator.Elevator {
	b.fleetMu.RLock()
	defer b.fleetMu.RUnlock()
	return append([]*elevator.Elevator(nil), b.elevators...)
}

// Elevator returns the car with id, or nil.
func (b *Building) Elevator(id int) *elevator.Elevator {
	b.fleetMu.RLock()
	defer b.fleetMu.RUnlock()
	for _, elev := range b.elevators {
		if elev.ID() == id {
			return elev
		}
	}
	return nil
}

// Snapshots returns one snapshot per car in id order, each taken under
// that car's lock.
func (b *Building) Snapshots() []elevator.Snapshot {
	elevators := b.Elevators()
	snapshots := make([]elevator.Snapshot, 0, len(elevators))
	for _, elev := range elevators {
		snapshots = append(snapshots, elev.Snapshot())
	}
	return snapshots
}
