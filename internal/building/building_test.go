package building

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevator"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevconsts"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevrequest"
	"github.com/szymonmasternak/elevator-dispatch/internal/logger"
)

func testElevatorConfig() elevator.Config {
	return elevator.Config{TravelTime: time.Millisecond, IdleInterval: time.Millisecond}
}

func TestQueueFIFO(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	b := NewBuilding(testElevatorConfig(), nil)

	if _, ok := b.Fetch(); ok {
		t.Errorf("Fetch() on empty queue returned a request")
	}

	requests := []elevrequest.CallRequest{{Origin: 1, Destination: 4}, {Origin: 6, Destination: 2}, {Origin: 0, Destination: 9}}
	for _, req := range requests {
		b.Submit(req)
	}
	if b.Pending() != 3 {
		t.Errorf("Pending() = %d, expected 3", b.Pending())
	}
	if !reflect.DeepEqual(b.PendingRequests(), requests) {
		t.Errorf("PendingRequests() = %v, expected %v", b.PendingRequests(), requests)
	}

	for _, expected := range requests {
		head, ok := b.Fetch()
		if !ok || head != expected {
			t.Errorf("Fetch() = %v, %v, expected %v, true", head, ok, expected)
		}
		//fetch does not remove
		if again, _ := b.Fetch(); again != head {
			t.Errorf("Second Fetch() = %v, expected %v", again, head)
		}
		b.RemoveHead()
	}

	if b.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", b.Pending())
	}
}

func TestRemoveHeadOnEmptyQueue(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	b := NewBuilding(testElevatorConfig(), nil)
	b.RemoveHead()
	b.RemoveHead()
	if b.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", b.Pending())
	}
	if b.RemoveHeadIf(elevrequest.CallRequest{Origin: 1, Destination: 2}) {
		t.Errorf("RemoveHeadIf() on empty queue returned true")
	}
}

func TestRemoveHeadIf(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	b := NewBuilding(testElevatorConfig(), nil)
	first := elevrequest.CallRequest{Origin: 1, Destination: 4}
	second := elevrequest.CallRequest{Origin: 6, Destination: 2}
	b.Submit(first)
	b.Submit(second)

	if b.RemoveHeadIf(second) {
		t.Errorf("RemoveHeadIf(%v) removed a request that is not the head", second)
	}
	if !b.RemoveHeadIf(first) {
		t.Errorf("RemoveHeadIf(%v) = false, expected true", first)
	}
	if head, _ := b.Fetch(); head != second {
		t.Errorf("Fetch() = %v, expected %v", head, second)
	}
}

func TestSubmitWakes(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	b := NewBuilding(testElevatorConfig(), nil)
	b.Submit(elevrequest.CallRequest{Origin: 1, Destination: 4})
	b.Submit(elevrequest.CallRequest{Origin: 2, Destination: 4})

	select {
	case <-b.Wake():
	default:
		t.Errorf("Submit() did not signal Wake()")
	}
}

func TestConcurrentSubmit(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	b := NewBuilding(testElevatorConfig(), nil)
	var waitGroup sync.WaitGroup

	for producer := 0; producer < 4; producer++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			for i := 0; i < 250; i++ {
				b.Submit(elevrequest.CallRequest{Origin: 0, Destination: 1})
			}
		}()
	}
	waitGroup.Wait()

	if b.Pending() != 1000 {
		t.Errorf("Pending() = %d, expected 1000", b.Pending())
	}
}

func TestInitializeElevators(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	b := NewBuilding(testElevatorConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	defer wg.Wait()
	defer cancel()

	if err := b.InitializeElevators(ctx, wg, 3); err != nil {
		t.Fatalf("InitializeElevators(3) returned error %v", err)
	}
	if err := b.InitializeElevators(ctx, wg, 3); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("Second InitializeElevators() error = %v, expected %v", err, ErrAlreadyInitialized)
	}

	elevators := b.Elevators()
	if len(elevators) != 3 {
		t.Fatalf("len(Elevators()) = %d, expected 3", len(elevators))
	}
	for index, snap := range b.Snapshots() {
		if snap.ID != index || snap.Floor != 0 || snap.Motion != elevconsts.Stationary {
			t.Errorf("Snapshots()[%d] = %v, expected id %d at floor 0 stationary", index, snap.String(), index)
		}
	}
	if b.Elevator(2) != elevators[2] || b.Elevator(3) != nil {
		t.Errorf("Elevator() lookup returned the wrong car")
	}
}

func TestInitializeElevatorsInvalidCount(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	b := NewBuilding(testElevatorConfig(), nil)
	wg := &sync.WaitGroup{}

	if err := b.InitializeElevators(context.Background(), wg, -1); !errors.Is(err, ErrInvalidElevatorCount) {
		t.Errorf("InitializeElevators(-1) error = %v, expected %v", err, ErrInvalidElevatorCount)
	}
	if err := b.InitializeElevators(context.Background(), wg, 0); err != nil {
		t.Errorf("InitializeElevators(0) returned error %v", err)
	}
	if len(b.Elevators()) != 0 {
		t.Errorf("len(Elevators()) = %d, expected 0", len(b.Elevators()))
	}
}
