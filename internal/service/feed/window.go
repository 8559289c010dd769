package feed

// Window is the "load more" view over a filtered list. It starts at one step
// and grows by one step at a time; any filter change resets it.
type Window struct {
	step int
	size int
}

// NewWindow creates a window of the given step size
func NewWindow(step int) *Window {
	if step <= 0 {
		step = 1
	}
	return &Window{step: step, size: step}
}

// WindowAt restores a window from a client-reported size. The size is rounded
// up to a whole number of steps and kept within the filtered length.
func WindowAt(step, shown, filtered int) *Window {
	w := NewWindow(step)
	if shown > filtered {
		shown = filtered
	}
	if shown > w.step {
		w.size = ((shown + w.step - 1) / w.step) * w.step
	}
	if w.size > filtered && filtered > w.step {
		w.size = filtered
	}
	if filtered <= w.step {
		w.size = w.step
	}
	return w
}

// Size is the current window size
func (w *Window) Size() int {
	return w.size
}

// Visible is how many of filtered records are shown
func (w *Window) Visible(filtered int) int {
	if filtered < w.size {
		return filtered
	}
	return w.size
}

// Remaining is how many filtered records are hidden
func (w *Window) Remaining(filtered int) int {
	return filtered - w.Visible(filtered)
}

// More grows the window by one step, never past the filtered length.
// Returns false when everything is already visible.
func (w *Window) More(filtered int) bool {
	if w.size >= filtered {
		return false
	}
	w.size += w.step
	if w.size > filtered {
		w.size = filtered
	}
	return true
}

// Reset shrinks the window back to one step
func (w *Window) Reset() {
	w.size = w.step
}
