package game

//go:generate go tool stringer -type=Action

// Action is a discrete input command from a frontend.
type Action int

const (
	ActionJump Action = iota
	ActionSpeedUp
	ActionSpeedDown
)

// Input queues actions between ticks. Frontends append through
// Session.Trigger; systems drain the actions they own at the start of a tick.
type Input struct {
	pending []Action
}

// Push queues an action for the next tick.
func (in *Input) Push(a Action) {
	in.pending = append(in.pending, a)
}

// Pending returns the number of queued actions.
func (in *Input) Pending() int {
	return len(in.pending)
}

// take removes and returns queued actions matching keep, preserving order.
func (in *Input) take(keep func(Action) bool) []Action {
	var taken []Action
	rest := in.pending[:0]
	for _, a := range in.pending {
		if keep(a) {
			taken = append(taken, a)
		} else {
			rest = append(rest, a)
		}
	}
	clear(in.pending[len(rest):])
	in.pending = rest
	return taken
}

func isSpeedAction(a Action) bool {
	return a == ActionSpeedUp || a == ActionSpeedDown
}

func isJumpAction(a Action) bool {
	return a == ActionJump
}
