package elevator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/szymonmasternak/elevator-dispatch/internal/elevconsts"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevevent"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevrequest"
	"github.com/szymonmasternak/elevator-dispatch/internal/floorset"
	"github.com/szymonmasternak/elevator-dispatch/internal/logger"
)

var Log = logger.GetLogger()

var ErrStaleSnapshot = errors.New("elevator state changed since snapshot")

type Config struct {
	TravelTime   time.Duration //time to move a single floor
	IdleInterval time.Duration //longest wait between checks when there is no work
}

func DefaultConfig() Config {
	return Config{
		TravelTime:   elevconsts.DEFAULT_TRAVEL_TIME,
		IdleInterval: elevconsts.DEFAULT_IDLE_INTERVAL,
	}
}

type Elevator struct {
	id     int
	config Config

	mu          sync.Mutex
	floor       int
	motion      elevconsts.Dirn
	leg         elevconsts.Dirn //direction whose checkpoints are being served, Stationary between legs
	legStarted  bool            //a checkpoint of the current leg has been popped
	checkpoints map[elevconsts.Dirn]*floorset.FloorSet
	version     uint64

	wake   chan struct{}
	events chan<- elevevent.ElevatorEvent
}

// NewElevator returns a car at floor 0 with nothing to do. events may be nil.
func NewElevator(id int, config Config, events chan<- elevevent.ElevatorEvent) *Elevator {
	return &Elevator{
		id:     id,
		config: config,
		floor:  0,
		motion: elevconsts.Stationary,
		leg:    elevconsts.Stationary,
		checkpoints: map[elevconsts.Dirn]*floorset.FloorSet{
			elevconsts.Up:   floorset.New(),
			elevconsts.Down: floorset.New(),
		},
		wake:   make(chan struct{}, 1),
		events: events,
	}
}

// FromSnapshot returns a car in the state described by snapshot.
func FromSnapshot(snapshot Snapshot, config Config, events chan<- elevevent.ElevatorEvent) *Elevator {
	snap := snapshot.Clone()
	e := NewElevator(snap.ID, config, events)
	e.floor = snap.Floor
	e.motion = snap.Motion
	e.leg = snap.Leg
	e.legStarted = snap.LegStarted
	e.version = snap.Version
	e.checkpoints[elevconsts.Up].Add(snap.Up...)
	e.checkpoints[elevconsts.Down].Add(snap.Down...)
	return e
}

func (e *Elevator) ID() int {
	return e.id
}

func (e *Elevator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		ID:         e.id,
		Floor:      e.floor,
		Motion:     e.motion,
		Leg:        e.leg,
		LegStarted: e.legStarted,
		Up:         e.checkpoints[elevconsts.Up].Floors(),
		Down:       e.checkpoints[elevconsts.Down].Floors(),
		Version:    e.version,
	}
}

// Assign installs the path for req: a repositioning run from the current
// floor to the origin when the car is elsewhere, then the service run.
func (e *Elevator) Assign(req elevrequest.CallRequest) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.assignLocked(req)
}

// AssignIfUnchanged is Assign guarded by the version of the snapshot the
// caller based its decision on.
func (e *Elevator) AssignIfUnchanged(req elevrequest.CallRequest, version uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.version != version {
		return ErrStaleSnapshot
	}
	e.assignLocked(req)
	return nil
}

func (e *Elevator) assignLocked(req elevrequest.CallRequest) {
	firstLeg := req.Direction()
	if e.floor != req.Origin {
		firstLeg = elevconsts.Travel(e.floor, req.Origin)
		e.addLocked(firstLeg, e.floor, req.Origin)
	}
	e.addLocked(req.Direction(), req.Origin, req.Destination)

	if e.motion == elevconsts.Stationary && e.hasCheckpointsLocked() {
		e.motion = firstLeg
	}
	e.version++

	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// Floors already passed on the leg in progress are dropped, so pops stay
// strictly monotonic.
func (e *Elevator) addLocked(dirn elevconsts.Dirn, floors ...int) {
	set := e.checkpoints[dirn]
	for _, floor := range floors {
		if e.legStarted && e.leg == dirn && behind(dirn, floor, e.floor) {
			continue
		}
		set.Add(floor)
	}
}

func behind(dirn elevconsts.Dirn, floor int, current int) bool {
	if dirn == elevconsts.Up {
		return floor <= current
	}
	return floor >= current
}

func (e *Elevator) hasCheckpointsLocked() bool {
	return !e.checkpoints[elevconsts.Up].Empty() || !e.checkpoints[elevconsts.Down].Empty()
}

// Start runs the movement loop until ctx is cancelled.
func (e *Elevator) Start(ctx context.Context, waitGroup *sync.WaitGroup) {
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		Log.Debug().Int("elevator", e.id).Msg("Elevator loop started")

		for {
			event, moved := e.Step()

			var running bool
			if moved {
				e.emit(ctx, event.Wrap())
				running = sleep(ctx, e.config.TravelTime, nil)
			} else {
				running = sleep(ctx, e.config.IdleInterval, e.wake)
			}

			if !running {
				floor := e.Snapshot().Floor
				Log.Warn().Int("elevator", e.id).Int("floor", floor).Msg("Elevator loop has been signaled to stop")
				e.emitNonBlocking(elevevent.StoppedEvent{ElevatorID: e.id, Floor: floor}.Wrap())
				return
			}
		}
	}()
}

// sleep waits for duration or a wake signal, false if ctx ended first.
func sleep(ctx context.Context, duration time.Duration, wake <-chan struct{}) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	case <-wake:
		return true
	}
}

func (e *Elevator) emit(ctx context.Context, event elevevent.ElevatorEvent) {
	if e.events == nil {
		return
	}
	select {
	case e.events <- event:
	case <-ctx.Done():
	}
}

func (e *Elevator) emitNonBlocking(event elevevent.ElevatorEvent) {
	if e.events == nil {
		return
	}
	select {
	case e.events <- event:
	default:
	}
}
