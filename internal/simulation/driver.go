package simulation

import (
	"context"
	"time"
)

// drive submits the configured number of random requests, one per
// request interval.
func (s *Simulator) drive(ctx context.Context) {
	defer s.driverWaitGroup.Done()
	defer close(s.driverDone)

	for i := 0; i < s.config.RequestCount; i++ {
		origin, destination := s.randomRequest()
		if err := s.Submit(origin, destination); err != nil {
			Log.Error().Err(err).Msgf("Driver generated invalid request %d->%d", origin, destination)
		}

		if i == s.config.RequestCount-1 {
			break
		}
		timer := time.NewTimer(s.config.RequestInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			Log.Warn().Msgf("Request driver stopped after %d of %d requests", i+1, s.config.RequestCount)
			return
		case <-timer.C:
		}
	}
	Log.Debug().Msgf("Request driver submitted %d requests", s.config.RequestCount)
}

// randomRequest draws origin and destination uniformly from the floors,
// never equal to each other.
func (s *Simulator) randomRequest() (int, int) {
	origin := s.rng.Intn(s.config.Floors)
	destination := s.rng.Intn(s.config.Floors - 1)
	if destination >= origin {
		destination++
	}
	return origin, destination
}
