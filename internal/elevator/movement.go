package elevator

import (
	"github.com/szymonmasternak/elevator-dispatch/internal/elevconsts"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevevent"
)

// Step advances the car by one floor, or pops the checkpoint it is standing
// on. It returns false when there is nothing to do.
func (e *Elevator) Step() (elevevent.MovementEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	leg := e.chooseLegLocked()
	if leg == elevconsts.Stationary {
		e.motion = elevconsts.Stationary
		return elevevent.MovementEvent{ElevatorID: e.id, Floor: e.floor, Motion: e.motion}, false
	}
	if leg != e.leg {
		e.leg = leg
		e.legStarted = false
	}
	set := e.checkpoints[leg]

	if !e.legStarted {
		first := e.firstCheckpointLocked(leg)
		if ahead(leg, first, e.floor) {
			//walk the car to the start of the leg first
			e.floor += int(elevconsts.Travel(e.floor, first))
			e.motion = elevconsts.Travel(e.floor, first)
			if e.motion == elevconsts.Stationary {
				e.motion = leg
			}
			e.version++
			return elevevent.MovementEvent{ElevatorID: e.id, Floor: e.floor, Leg: leg, Motion: e.motion}, true
		} else if e.floor != first {
			set.Add(e.floor)
		}
	}

	var floor, following int
	var hasFollowing bool
	if leg == elevconsts.Up {
		floor, _ = set.PopMin()
		following, hasFollowing = set.Higher(floor)
	} else {
		floor, _ = set.PopMax()
		following, hasFollowing = set.Lower(floor)
	}
	e.floor = floor
	e.legStarted = true

	if hasFollowing {
		set.AddBetween(floor, following)
		e.motion = leg
	} else {
		e.leg = elevconsts.Stationary
		e.legStarted = false
		e.motion = e.pendingMotionLocked(leg)
	}
	e.version++

	Log.Debug().Int("elevator", e.id).Int("floor", e.floor).Str("next", e.motion.String()).Msg("Elevator checkpoint")
	return elevevent.MovementEvent{ElevatorID: e.id, Floor: floor, Leg: leg, Motion: e.motion, Checkpoint: true}, true
}

// Leg order: the leg in progress, then the direction the car is heading,
// then Up before Down.
func (e *Elevator) chooseLegLocked() elevconsts.Dirn {
	if e.leg != elevconsts.Stationary && !e.checkpoints[e.leg].Empty() {
		return e.leg
	}
	if e.motion != elevconsts.Stationary && !e.checkpoints[e.motion].Empty() {
		return e.motion
	}
	for _, dirn := range elevconsts.Legs {
		if !e.checkpoints[dirn].Empty() {
			return dirn
		}
	}
	return elevconsts.Stationary
}

func (e *Elevator) firstCheckpointLocked(leg elevconsts.Dirn) int {
	if leg == elevconsts.Up {
		first, _ := e.checkpoints[leg].Min()
		return first
	}
	first, _ := e.checkpoints[leg].Max()
	return first
}

// ahead reports whether the car has overshot the start of a leg, it then
// has to travel against the leg direction to reach it.
func ahead(leg elevconsts.Dirn, first int, current int) bool {
	if leg == elevconsts.Up {
		return current > first
	}
	return current < first
}

func (e *Elevator) pendingMotionLocked(finished elevconsts.Dirn) elevconsts.Dirn {
	for _, dirn := range [2]elevconsts.Dirn{finished.Opposite(), finished} {
		if !e.checkpoints[dirn].Empty() {
			return dirn
		}
	}
	return elevconsts.Stationary
}
