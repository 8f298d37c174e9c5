package purchaseflow

// State is the UI-consumable purchase flow state. Created at app/session
// start in StateIdle and torn down back to StateIdle at logout.
type State string

const (
	StateIdle         State = "idle"
	StateInitializing State = "initializing"
	StateReady        State = "ready"
	StatePurchasing   State = "purchasing"
	StateRestoring    State = "restoring"
	StateVerifying    State = "verifying"
	StateError        State = "error"
)

// transitions is the closed transition table. Teardown to StateIdle is
// additionally allowed from every state and handled separately.
var transitions = map[State][]State{
	StateIdle:         {StateInitializing},
	StateInitializing: {StateReady, StateIdle},
	StateReady:        {StatePurchasing, StateRestoring},
	StatePurchasing:   {StateVerifying, StateReady},
	StateRestoring:    {StateVerifying, StateReady},
	StateVerifying:    {StateReady, StateError},
	StateError:        {},
}

func canTransition(from, to State) bool {
	if to == StateIdle && from != StateInitializing {
		// Teardown path: any state may collapse back to idle.
		return true
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
