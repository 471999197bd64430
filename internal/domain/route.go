package domain

// Stop is one completed delivery within a vehicle run.
type Stop struct {
	ParcelID int
	Location int
	Distance float64
	DepartAt TimeOfDay
	ArriveAt TimeOfDay
}

// RunOutcome tells whether a vehicle run emptied its load.
type RunOutcome int

const (
	OutcomeCompleted RunOutcome = iota
	OutcomeAborted
)

func (o RunOutcome) String() string {
	if o == OutcomeAborted {
		return "aborted"
	}
	return "completed"
}

// RunResult describes one route-engine pass over a vehicle's load.
// An aborted run keeps the stops made before the failure; Err explains it
// and Remaining lists the parcels left on the vehicle.
type RunResult struct {
	VehicleID int
	StartAt   TimeOfDay
	EndAt     TimeOfDay
	Distance  float64
	Stops     []Stop
	Outcome   RunOutcome
	Err       error
	Remaining []int
}

func (r RunResult) Aborted() bool { return r.Outcome == OutcomeAborted }
