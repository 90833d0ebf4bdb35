package simulation

import (
	"context"

	"github.com/szymonmasternak/elevator-dispatch/internal/elevevent"
)

func (s *Simulator) collect(ctx context.Context) {
	defer s.collectWaitGroup.Done()

	for {
		select {
		case <-ctx.Done():
			//cars and scheduler are stopped, take what they left behind
			for {
				select {
				case event := <-s.events:
					s.record(event)
				default:
					Log.Debug().Msg("Event collector stopped")
					return
				}
			}
		case event := <-s.events:
			s.record(event)
		}
	}
}

func (s *Simulator) record(event elevevent.ElevatorEvent) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	switch value := event.Value.(type) {
	case elevevent.MovementEvent:
		s.stats.Movements++
		travelled := value.Floor - s.lastFloors[value.ElevatorID]
		if travelled < 0 {
			travelled = -travelled
		}
		s.stats.FloorsTravelled[value.ElevatorID] += travelled
		s.lastFloors[value.ElevatorID] = value.Floor
		if value.Checkpoint {
			Log.Info().Int("elevator", value.ElevatorID).Msgf("Elevator %d at floor %d, heading %v", value.ElevatorID, value.Floor, value.Motion)
		}
	case elevevent.AssignmentEvent:
		s.stats.Scheduled++
	case elevevent.StoppedEvent:
		Log.Debug().Int("elevator", value.ElevatorID).Int("floor", value.Floor).Msg("Elevator stopped")
	default:
		Log.Warn().Msgf("Unhandled event %s", event.EventType())
	}
}
