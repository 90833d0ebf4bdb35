package simulation

import (
	"encoding/json"

	"github.com/tiendc/go-deepcopy"
)

type Stats struct {
	Submitted       int         `json:"submitted"`
	Scheduled       int         `json:"scheduled"`
	Movements       int         `json:"movements"`
	FloorsTravelled map[int]int `json:"floors_travelled"` //by elevator id
}

func (stats Stats) String() string {
	jsonData, err := json.Marshal(stats)
	if err != nil {
		Log.Error().Msg("Error Serialising Stats Object to JSON")
		return ""
	}
	return string(jsonData)
}

// Stats returns a copy that does not change with the running simulation.
func (s *Simulator) Stats() Stats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	var stats Stats
	if err := deepcopy.Copy(&stats, &s.stats); err != nil {
		Log.Error().Err(err).Msg("Copying stats")
		stats = s.stats
		stats.FloorsTravelled = make(map[int]int, len(s.stats.FloorsTravelled))
		for id, floors := range s.stats.FloorsTravelled {
			stats.FloorsTravelled[id] = floors
		}
	}
	if stats.FloorsTravelled == nil {
		stats.FloorsTravelled = map[int]int{}
	}
	return stats
}
