package selector

// Intent is the closed set of inbound user intents a presentation layer
// forwards to the Controller.
type Intent interface {
	intent()
}

type (
	// FocusMsg: the input gained focus.
	FocusMsg struct{}
	// BlurMsg: the input lost focus. Closing is delayed by the blur grace.
	BlurMsg struct{}
	// TypeMsg: the input text changed.
	TypeMsg struct{ Text string }
	ArrowDownMsg struct{}
	ArrowUpMsg   struct{}
	EnterMsg     struct{}
	EscapeMsg    struct{}
	// PointerSelectMsg: an option row was clicked.
	PointerSelectMsg struct{ Index int }
	// ScrollMsg: the list was scrolled to Offset.
	ScrollMsg struct{ Offset int }
	// RefreshMsg re-issues the lookup for the current query.
	RefreshMsg struct{}
)

func (FocusMsg) intent()         {}
func (BlurMsg) intent()          {}
func (TypeMsg) intent()          {}
func (ArrowDownMsg) intent()     {}
func (ArrowUpMsg) intent()       {}
func (EnterMsg) intent()         {}
func (EscapeMsg) intent()        {}
func (PointerSelectMsg) intent() {}
func (ScrollMsg) intent()        {}
func (RefreshMsg) intent()       {}

// blurElapsedMsg fires when the blur grace period ends.
type blurElapsedMsg struct {
	id  string
	tag int
}
