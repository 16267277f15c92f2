package interaction

// Action is what the monitor does in response to a key
type Action int

const (
	ActionNone Action = iota
	ActionReset
	ActionHistory
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionReset:
		return "reset"
	case ActionHistory:
		return "history"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// ActionFor maps a key to its action. Letters match in either case, and also
// on a Russian keyboard layout (к, р, й for r, h, q).
func ActionFor(event KeyEvent) Action {
	if event.Type == KeyEscape {
		return ActionNone
	}

	switch event.Key {
	case 'r', 'R', 'к', 'К':
		return ActionReset
	case 'h', 'H', 'р', 'Р':
		return ActionHistory
	case 'q', 'Q', 'й', 'Й', keyCtrlC:
		return ActionQuit
	default:
		return ActionNone
	}
}
