package elevevent

import (
	"github.com/szymonmasternak/elevator-dispatch/internal/elevconsts"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevrequest"
)

type ElevatorEvent struct {
	//Golang doesnt support union types,
	//so we have to pass any of the below
	//structs
	Value any
}

// Sent by a car after every single-floor step
type MovementEvent struct {
	ElevatorID int
	Floor      int
	Leg        elevconsts.Dirn //direction being drained or approached
	Motion     elevconsts.Dirn //motion after the step
	Checkpoint bool            //false while walking to the first checkpoint of a leg
}

func (me MovementEvent) Wrap() ElevatorEvent {
	return ElevatorEvent{Value: me}
}

// Sent by the scheduler once a request is installed on a car
type AssignmentEvent struct {
	ElevatorID int
	Request    elevrequest.CallRequest
}

func (ae AssignmentEvent) Wrap() ElevatorEvent {
	return ElevatorEvent{Value: ae}
}

// Sent by a car when its loop exits
type StoppedEvent struct {
	ElevatorID int
	Floor      int
}

func (se StoppedEvent) Wrap() ElevatorEvent {
	return ElevatorEvent{Value: se}
}

func (e *ElevatorEvent) EventType() string {
	switch e.Value.(type) {
	case MovementEvent:
		return "MovementEvent"
	case AssignmentEvent:
		return "AssignmentEvent"
	case StoppedEvent:
		return "StoppedEvent"
	default:
		return "UnknownEvent"
	}
}
