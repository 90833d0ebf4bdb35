package scheduler

import (
	"github.com/szymonmasternak/elevator-dispatch/internal/elevator"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevconsts"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevrequest"
)

// Select returns the car that should serve req.
//
// Two candidates are considered: the closest stationary car, and the
// closest car already moving in the request direction that has not passed
// the origin. When both exist their floors are compared: for Up the higher
// car wins, for Down the lower one, and equal floors go to the moving car.
// Ties between cars of the same kind go to the lower id.
func Select(req elevrequest.CallRequest, snapshots []elevator.Snapshot) (elevator.Snapshot, bool) {
	stationary, hasStationary := closest(req, snapshots, func(snap elevator.Snapshot) bool {
		return snap.Motion == elevconsts.Stationary
	})
	approaching, hasApproaching := closest(req, snapshots, func(snap elevator.Snapshot) bool {
		return Approaching(req, snap)
	})

	switch {
	case hasStationary && hasApproaching:
		if prefersApproaching(req.Direction(), approaching.Floor, stationary.Floor) {
			return approaching, true
		}
		return stationary, true
	case hasApproaching:
		return approaching, true
	case hasStationary:
		return stationary, true
	}
	return elevator.Snapshot{}, false
}

func prefersApproaching(dirn elevconsts.Dirn, approaching int, stationary int) bool {
	if dirn == elevconsts.Up {
		return approaching >= stationary
	}
	return approaching <= stationary
}

// Approaching reports whether the car moves in the request direction and
// has not yet passed the origin floor. A car walking back to the start of
// its next leg is not approaching anything.
func Approaching(req elevrequest.CallRequest, snap elevator.Snapshot) bool {
	if snap.Repositioning() {
		return false
	}
	switch req.Direction() {
	case elevconsts.Up:
		return snap.Motion == elevconsts.Up && snap.Floor <= req.Origin
	case elevconsts.Down:
		return snap.Motion == elevconsts.Down && snap.Floor >= req.Origin
	}
	return false
}

func closest(req elevrequest.CallRequest, snapshots []elevator.Snapshot, eligible func(elevator.Snapshot) bool) (elevator.Snapshot, bool) {
	var best elevator.Snapshot
	found := false
	for _, snap := range snapshots {
		if !eligible(snap) {
			continue
		}
		if !found || distance(req, snap) < distance(req, best) {
			best = snap
			found = true
		}
	}
	return best, found
}

func distance(req elevrequest.CallRequest, snap elevator.Snapshot) int {
	if snap.Floor > req.Origin {
		return snap.Floor - req.Origin
	}
	return req.Origin - snap.Floor
}
