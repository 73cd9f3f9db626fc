package mdp

// Action is a unit grid move, or no move at all. Picking up and
// dropping off items are not actions: they happen automatically when the
// agent occupies a goal cell or the start cell.
type Action struct {
	DRow int
	DCol int
}

var (
	Down  = Action{DRow: 1, DCol: 0}
	Up    = Action{DRow: -1, DCol: 0}
	Right = Action{DRow: 0, DCol: 1}
	Left  = Action{DRow: 0, DCol: -1}
	Stay  = Action{DRow: 0, DCol: 0}
)

// actions is the action set in enumeration order. Solvers break ties
// between equally valued actions by this order.
var actions = []Action{Down, Up, Right, Left, Stay}

// Actions returns the action set in enumeration order
func Actions() []Action {
	a := make([]Action, len(actions))
	copy(a, actions)
	return a
}

// NumActions is the number of actions
const NumActions = 5

// Index returns the index of a in the enumeration order, or -1 if a is
// not a valid action
func (a Action) Index() int {
	for i, b := range actions {
		if a == b {
			return i
		}
	}
	return -1
}

func (a Action) String() string {
	switch a {
	case Down:
		return "Down"
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Left:
		return "Left"
	case Stay:
		return "Stay"
	default:
		return "Invalid"
	}
}
