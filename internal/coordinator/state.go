package coordinator

// State is the coordinator's lifecycle phase.
type State int32

const (
	StateBootstrapping State = iota
	StateListening
	StateDispatching
	StateShuttingDown
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateBootstrapping:
		return "BOOTSTRAPPING"
	case StateListening:
		return "LISTENING"
	case StateDispatching:
		return "DISPATCHING"
	case StateShuttingDown:
		return "SHUTTING_DOWN"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}
