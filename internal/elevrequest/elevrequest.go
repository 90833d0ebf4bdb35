package elevrequest

import (
	"errors"
	"fmt"

	"github.com/szymonmasternak/elevator-dispatch/internal/elevconsts"
)

var (
	ErrDegenerateRequest = errors.New("origin and destination floor are the same")
	ErrNegativeFloor     = errors.New("floor is below ground level")
	ErrFloorOutOfRange   = errors.New("floor is outside the building")
)

// CallRequest is a pickup at Origin with drop-off at Destination.
type CallRequest struct {
	Origin      int `json:"origin"`
	Destination int `json:"destination"`
}

func New(origin, destination int) (CallRequest, error) {
	if origin < 0 || destination < 0 {
		return CallRequest{}, fmt.Errorf("call request %d->%d: %w", origin, destination, ErrNegativeFloor)
	}
	if origin == destination {
		return CallRequest{}, fmt.Errorf("call request %d->%d: %w", origin, destination, ErrDegenerateRequest)
	}
	return CallRequest{Origin: origin, Destination: destination}, nil
}

// NewBounded is New for a building with floors 0..floors-1.
func NewBounded(origin, destination, floors int) (CallRequest, error) {
	req, err := New(origin, destination)
	if err != nil {
		return req, err
	}
	if origin >= floors || destination >= floors {
		return CallRequest{}, fmt.Errorf("call request %d->%d in %d floors: %w", origin, destination, floors, ErrFloorOutOfRange)
	}
	return req, nil
}

func (r CallRequest) Direction() elevconsts.Dirn {
	if r.Destination > r.Origin {
		return elevconsts.Up
	}
	return elevconsts.Down
}

func (r CallRequest) String() string {
	return fmt.Sprintf("%d->%d", r.Origin, r.Destination)
}
