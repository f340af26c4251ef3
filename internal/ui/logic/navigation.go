package logic

// Navigator handles cursor movement and viewport management over a flat row list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 20}
}

// SelectedIndex returns the current selected index
func (n *Navigator) SelectedIndex() int {
	return n.selectedIndex
}

// ViewportOffset returns the first visible row
func (n *Navigator) ViewportOffset() int {
	return n.viewportOffset
}

// ViewportHeight returns the number of rows the viewport can show
func (n *Navigator) ViewportHeight() int {
	return n.viewportHeight
}

// SetViewportHeight updates the viewport size and keeps the cursor visible
func (n *Navigator) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.ensureSelectedVisible()
}

// SetTotal updates the row count after the list changed, clamping the cursor
func (n *Navigator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	n.totalItems = total
	n.clamp()
	n.ensureSelectedVisible()
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	n.selectedIndex = index
	n.clamp()
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// MoveBy moves the cursor delta rows, stopping at either end
func (n *Navigator) MoveBy(delta int) {
	n.SetSelectedIndex(n.selectedIndex + delta)
}

// PageUp moves the selection up by one page
func (n *Navigator) PageUp() {
	n.MoveBy(-n.pageSize())
}

// PageDown moves the selection down by one page
func (n *Navigator) PageDown() {
	n.MoveBy(n.pageSize())
}

// Home moves to the first row
func (n *Navigator) Home() {
	n.SetSelectedIndex(0)
}

// End moves to the last row
func (n *Navigator) End() {
	n.SetSelectedIndex(n.totalItems - 1)
}

// HasMoreAbove reports whether rows are hidden above the viewport
func (n *Navigator) HasMoreAbove() bool {
	return n.viewportOffset > 0
}

// HasMoreBelow reports whether rows are hidden below the viewport
func (n *Navigator) HasMoreBelow() bool {
	return n.viewportOffset+n.effectiveHeight() < n.totalItems
}

// VisibleRange returns the half-open row range to render
func (n *Navigator) VisibleRange() (int, int) {
	start := n.viewportOffset
	end := start + n.effectiveHeight()
	if end > n.totalItems {
		end = n.totalItems
	}
	return start, end
}

func (n *Navigator) pageSize() int {
	size := n.viewportHeight - 2 // leave some overlap
	if size < 1 {
		size = 1
	}
	return size
}

func (n *Navigator) clamp() {
	if n.selectedIndex >= n.totalItems {
		n.selectedIndex = n.totalItems - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
}

// effectiveHeight is the viewport height minus the lines taken by scroll indicators
func (n *Navigator) effectiveHeight() int {
	needsTop := n.viewportOffset > 0
	needsBottom := n.viewportOffset+n.viewportHeight < n.totalItems

	// showing the top indicator can push the last row out
	if !needsBottom && needsTop {
		if n.totalItems-n.viewportOffset > n.viewportHeight-1 {
			needsBottom = true
		}
	}

	h := n.viewportHeight
	if needsTop {
		h--
	}
	if needsBottom {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// ensureSelectedVisible adjusts the viewport to keep the selected item visible
func (n *Navigator) ensureSelectedVisible() {
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}

	effective := n.effectiveHeight()
	if n.selectedIndex >= n.viewportOffset+effective {
		newOffset := n.selectedIndex - effective + 1
		// Scrolling down may add the top indicator and shrink the window by one
		if newOffset > 0 && n.viewportOffset == 0 {
			newOffset++
		}
		n.viewportOffset = newOffset
	}

	maxOffset := n.totalItems - n.effectiveHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
