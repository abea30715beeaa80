package puddle

import (
	"sync/atomic"

	"github.com/san-kum/puddle/internal/palette"
)

// Surface is the display the engine draws on. Dimensions are in simulation
// cells, not terminal columns.
type Surface interface {
	Dimensions() (rows, cols int)
	DrawCell(row, col int, s palette.Swatch)
	Present()
	// PollKey returns a pending key without blocking.
	PollKey() (rune, bool)
	SupportsColors(n int) bool
}

// Flags records asynchronous requests for the frame loop. Setters are safe to
// call from any goroutine and do nothing beyond storing a bit.
type Flags struct {
	resize   atomic.Bool
	shutdown atomic.Bool
}

func (f *Flags) RequestResize()   { f.resize.Store(true) }
func (f *Flags) RequestShutdown() { f.shutdown.Store(true) }

// TakeResize reports and clears a pending resize request.
func (f *Flags) TakeResize() bool { return f.resize.Swap(false) }

func (f *Flags) ShutdownRequested() bool { return f.shutdown.Load() }
