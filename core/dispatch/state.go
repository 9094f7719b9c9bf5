package dispatch

import "fmt"

// State is the engine lifecycle phase. Transitions only move forward:
// Active, then Draining, then Terminated.
type State uint8

const (
	StateActive State = iota
	StateDraining
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDraining:
		return "draining"
	case StateTerminated:
		return "terminated"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Stats is a point-in-time view of engine counters.
type Stats struct {
	Dispatched  int64 // Messages accepted by Dispatch
	Delivered   int64 // Successful Receive calls
	Failed      int64 // Broadcasts aborted by a failing subscriber
	CallerRuns  int64 // Broadcasts executed on the Dispatch caller's goroutine
	InFlight    int32 // Accepted broadcasts not yet finished
	Workers     int   // Live pool goroutines
	Subscribers int   // Current registrations
	State       State
}
