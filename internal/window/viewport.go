package window

// Viewport holds the scroll state of a windowed list. Offsets are in the
// same unit as the item height.
type Viewport struct {
	itemCount  int
	itemHeight int
	height     int
	offset     int
	overscan   int
}

// NewViewport creates a viewport showing at most maxVisible rows.
func NewViewport(itemHeight, maxVisible, overscan int) *Viewport {
	if itemHeight <= 0 {
		itemHeight = 1
	}
	return &Viewport{
		itemHeight: itemHeight,
		height:     itemHeight * max(maxVisible, 0),
		overscan:   max(overscan, 0),
	}
}

// SetItemCount updates the list length and re-clamps the offset.
func (v *Viewport) SetItemCount(n int) {
	v.itemCount = max(n, 0)
	v.offset = v.clamp(v.offset)
}

// SetMaxHeight changes the maximum viewport height.
func (v *Viewport) SetMaxHeight(h int) {
	v.height = max(h, 0)
	v.offset = v.clamp(v.offset)
}

// ItemCount returns the list length.
func (v *Viewport) ItemCount() int { return v.itemCount }

// ItemHeight returns the fixed row height.
func (v *Viewport) ItemHeight() int { return v.itemHeight }

// Offset returns the current scroll offset.
func (v *Viewport) Offset() int { return v.offset }

// Height is the visible height: the configured maximum, or the content height
// when the content is shorter.
func (v *Viewport) Height() int {
	return min(v.height, v.TotalHeight())
}

// TotalHeight is the height of the whole list.
func (v *Viewport) TotalHeight() int {
	return v.itemCount * v.itemHeight
}

// MaxOffset is the largest valid scroll offset.
func (v *Viewport) MaxOffset() int {
	return max(0, v.TotalHeight()-v.height)
}

// SetOffset scrolls to offset, clamped to [0, MaxOffset].
func (v *Viewport) SetOffset(offset int) {
	v.offset = v.clamp(offset)
}

// ScrollBy scrolls relative to the current offset.
func (v *Viewport) ScrollBy(delta int) {
	v.SetOffset(v.offset + delta)
}

// ScrollToIndex positions row index according to align and returns the
// applied offset.
func (v *Viewport) ScrollToIndex(index int, align Align) int {
	if v.itemCount == 0 {
		v.offset = 0
		return 0
	}
	index = max(0, min(index, v.itemCount-1))

	top := index * v.itemHeight
	var target int
	switch align {
	case AlignCenter:
		target = top - (v.height-v.itemHeight)/2
	case AlignEnd:
		target = top + v.itemHeight - v.height
	default:
		target = top
	}
	v.offset = v.clamp(target)
	return v.offset
}

// FirstVisible is the row under the top edge of the viewport.
func (v *Viewport) FirstVisible() int {
	if v.itemCount == 0 {
		return 0
	}
	return min(v.offset/v.itemHeight, v.itemCount-1)
}

// VisibleRows is the number of rows that fit in the viewport.
func (v *Viewport) VisibleRows() int {
	return min(v.height/v.itemHeight, v.itemCount)
}

// Window computes the materialized range for the current state.
func (v *Viewport) Window() Window {
	return Compute(v.itemCount, v.itemHeight, v.Height(), v.offset, v.overscan)
}

func (v *Viewport) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if m := v.MaxOffset(); offset > m {
		return m
	}
	return offset
}
