package field

import "fmt"

// ViewportState is the logical simulation size in cells. Only ResizeManager
// changes it; everything else reads it from there.
type ViewportState struct {
	Rows, Cols int
}

func (v ViewportState) Valid() bool { return v.Rows > 0 && v.Cols > 0 }

func (v ViewportState) String() string { return fmt.Sprintf("%dx%d", v.Rows, v.Cols) }

// ResizeManager owns the viewport and performs buffer reallocation when a
// resize has been requested. Requests are recorded by Request and acted on by
// Apply, which the frame loop calls between simulation steps.
type ResizeManager struct {
	viewport ViewportState
	pending  bool
}

func NewResizeManager(v ViewportState) *ResizeManager {
	return &ResizeManager{viewport: v}
}

func (m *ResizeManager) Viewport() ViewportState { return m.viewport }

func (m *ResizeManager) Request()      { m.pending = true }
func (m *ResizeManager) Pending() bool { return m.pending }

// Apply reallocates both buffers of p to rows×cols, keeping the overlapping
// region of each. Non-positive dimensions are a transient state while the
// terminal is being resized: the request stays pending and Apply reports
// false so the caller retries on a later frame. Applying the current size is
// a no-op that clears the request.
func (m *ResizeManager) Apply(p *Pair, rows, cols int) (bool, error) {
	next := ViewportState{Rows: rows, Cols: cols}
	if !next.Valid() {
		m.pending = true
		return false, nil
	}
	if next == m.viewport && p.Rows() == rows && p.Cols() == cols {
		m.pending = false
		return true, nil
	}
	if err := p.Resize(rows, cols); err != nil {
		return false, fmt.Errorf("resize to %s: %w", next, err)
	}
	m.viewport = next
	m.pending = false
	return true, nil
}
