package elevator

import (
	"encoding/json"

	"github.com/szymonmasternak/elevator-dispatch/internal/elevconsts"
	"github.com/tiendc/go-deepcopy"
)

// Snapshot is a consistent copy of a car taken under its lock.
type Snapshot struct {
	ID         int             `json:"id"`
	Floor      int             `json:"floor"`
	Motion     elevconsts.Dirn `json:"motion"`
	Leg        elevconsts.Dirn `json:"leg"`
	LegStarted bool            `json:"leg_started"`
	Up         []int           `json:"up"`
	Down       []int           `json:"down"`
	Version    uint64          `json:"version"`
}

func (s Snapshot) Checkpoints(dirn elevconsts.Dirn) []int {
	switch dirn {
	case elevconsts.Up:
		return s.Up
	case elevconsts.Down:
		return s.Down
	default:
		return nil
	}
}

// Repositioning reports whether the car has not started its next leg yet
// and is past that leg's first checkpoint, so it must travel against the
// leg direction before serving it.
func (s Snapshot) Repositioning() bool {
	if s.LegStarted {
		return false
	}
	leg := s.Leg
	if leg == elevconsts.Stationary {
		leg = s.Motion
	}
	switch leg {
	case elevconsts.Up:
		return len(s.Up) > 0 && s.Floor > s.Up[0]
	case elevconsts.Down:
		return len(s.Down) > 0 && s.Floor < s.Down[len(s.Down)-1]
	}
	return false
}

func (s Snapshot) Idle() bool {
	return len(s.Up) == 0 && len(s.Down) == 0
}

func (s Snapshot) Clone() Snapshot {
	var clone Snapshot
	if err := deepcopy.Copy(&clone, &s); err != nil {
		Log.Error().Err(err).Int("elevator", s.ID).Msg("Error copying elevator snapshot")
		clone = s
		clone.Up = append([]int(nil), s.Up...)
		clone.Down = append([]int(nil), s.Down...)
	}
	return clone
}

func (s Snapshot) String() string {
	jsonData, err := json.Marshal(s)
	if err != nil {
		Log.Error().Msg("Error Serialising Snapshot Object to JSON")
		return ""
	}
	return string(jsonData)
}
