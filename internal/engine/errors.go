package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFleet aborts estimation and generation when the fleet average
	// capacity (or a selected vehicle's capacity) is zero.
	ErrInvalidFleet = errors.New("fleet average capacity is zero")

	// ErrNoSuitableVehicle means the dispatch loop could not place a trip.
	ErrNoSuitableVehicle = errors.New("no suitable vehicle for next trip")

	// ErrMissingPump means a pumping-mode schedule was generated without a pump.
	ErrMissingPump = errors.New("pumping schedule requires a pump")

	// ErrMalformedTimestamp wraps boundary parse failures so they surface as
	// errors instead of silently wrong schedules.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)

// VehicleUnavailableError reports the pre-dispatch availability gate failing
// for one or more of the selected vehicles.
type VehicleUnavailableError struct {
	Identifiers []string
}

func (e *VehicleUnavailableError) Error() string {
	return fmt.Sprintf("vehicles unavailable on schedule date: %s", strings.Join(e.Identifiers, ", "))
}
