package state

// State is the lifecycle stage of a search orchestrator.
type State string

// Orchestrator state constants.
const (
	// Idle means no query text and no filters; results are empty.
	Idle      State = "idle"
	Searching State = "searching"
	Results   State = "results"
	// Empty means the last query resolved to zero results; suggestions are exposed.
	Empty State = "empty"
)

// IsValid checks if the state is one of the known values.
func (s State) IsValid() bool {
	return s == Idle || s == Searching || s == Results || s == Empty
}

// IsResolved reports whether the state is a terminal outcome of a search.
func (s State) IsResolved() bool {
	return s == Results || s == Empty
}
