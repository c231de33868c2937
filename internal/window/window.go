// Package window computes which rows of a fixed-height list intersect a
// scrollable viewport, so only those rows need to be rendered.
package window

// Align positions a row inside the viewport when scrolling to it.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "start"
	}
}

// Window is the materialized index range of a list. End is inclusive; an
// empty list yields Start=0, End=-1.
type Window struct {
	Start       int
	End         int
	TotalHeight int
	ItemHeight  int
}

// Compute returns the rows intersecting [scrollOffset, scrollOffset+viewportHeight)
// expanded by overscan rows on each side and clamped to [0, itemCount-1].
func Compute(itemCount, itemHeight, viewportHeight, scrollOffset, overscan int) Window {
	if itemCount <= 0 || itemHeight <= 0 {
		return Window{Start: 0, End: -1, ItemHeight: max(itemHeight, 0)}
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	if overscan < 0 {
		overscan = 0
	}

	// An empty viewport still pins the row under the offset.
	span := max(viewportHeight, 1)

	first := min(scrollOffset/itemHeight, itemCount-1)
	last := min((scrollOffset+span-1)/itemHeight, itemCount-1)

	return Window{
		Start:       max(0, first-overscan),
		End:         min(itemCount-1, last+overscan),
		TotalHeight: itemCount * itemHeight,
		ItemHeight:  itemHeight,
	}
}

// Offset is the vertical position of row i.
func (w Window) Offset(i int) int {
	return i * w.ItemHeight
}

// Len is the number of materialized rows.
func (w Window) Len() int {
	if w.End < w.Start {
		return 0
	}
	return w.End - w.Start + 1
}

// Empty reports whether no rows are materialized.
func (w Window) Empty() bool {
	return w.Len() == 0
}

// Contains reports whether row i is materialized.
func (w Window) Contains(i int) bool {
	return i >= w.Start && i <= w.End
}

// Indices lists the materialized rows in order.
func (w Window) Indices() []int {
	out := make([]int, 0, w.Len())
	for i := w.Start; i <= w.End; i++ {
		out = append(out, i)
	}
	return out
}
