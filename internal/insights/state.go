package insights

import "fmt"

// State is the lifecycle of a single Aggregate call.
//
//	Pending -> HomepageFetched -> FacetsJoined -> Complete
//	any non-terminal state -> Failed
type State string

const (
	StatePending         State = "pending"
	StateHomepageFetched State = "homepage_fetched"
	StateFacetsJoined    State = "facets_joined"
	StateComplete        State = "complete"
	StateFailed          State = "failed"
)

var nextStates = map[State]State{
	StatePending:         StateHomepageFetched,
	StateHomepageFetched: StateFacetsJoined,
	StateFacetsJoined:    StateComplete,
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == StateComplete || s == StateFailed
}

// CanTransition reports whether a run in state s may move to next.
func (s State) CanTransition(next State) bool {
	if s.Terminal() {
		return false
	}
	if next == StateFailed {
		return true
	}
	return nextStates[s] == next
}

// run tracks the state of one Aggregate call.
type run struct {
	state State
}

func newRun() *run {
	return &run{state: StatePending}
}

func (r *run) advance(next State) error {
	if !r.state.CanTransition(next) {
		return fmt.Errorf("invalid run transition %s -> %s", r.state, next)
	}
	r.state = next
	return nil
}
