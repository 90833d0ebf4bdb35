package elevconsts

import "time"

const (
	MIN_FLOORS    = 0
	MAX_FLOORS    = 100
	MIN_ELEVATORS = 0
	MAX_ELEVATORS = 10
)

const (
	DEFAULT_FLOORS           = 20
	DEFAULT_ELEVATORS        = 3
	DEFAULT_REQUEST_COUNT    = 10
	DEFAULT_TRAVEL_TIME      = time.Second
	DEFAULT_POLL_INTERVAL    = 100 * time.Millisecond
	DEFAULT_IDLE_INTERVAL    = time.Second
	DEFAULT_REQUEST_INTERVAL = 3 * time.Second
)

type Dirn int

const (
	Down       Dirn = -1
	Stationary Dirn = 0
	Up         Dirn = 1
)

func (d Dirn) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Stationary:
		return "Stationary"
	default:
		return "Undefined"
	}
}

// Opposite of Up is Down and vice versa, Stationary has no opposite.
func (d Dirn) Opposite() Dirn {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	default:
		return Stationary
	}
}

// Travel returns the direction of a move from one floor to another.
func Travel(from, to int) Dirn {
	switch {
	case to > from:
		return Up
	case to < from:
		return Down
	default:
		return Stationary
	}
}

// Legs lists the directions a car can drain checkpoints in, in drain order.
var Legs = [2]Dirn{Up, Down}
