package field

import "fmt"

// Pair holds the two simulation buffers. Roles alternate every frame through
// Swap; a buffer is never owned by both roles.
type Pair struct {
	Current *Grid
	Next    *Grid
}

func NewPair(rows, cols int) (*Pair, error) {
	cur, err := Allocate(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("current buffer: %w", err)
	}
	next, err := Allocate(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("next buffer: %w", err)
	}
	return &Pair{Current: cur, Next: next}, nil
}

// Swap exchanges the buffer roles without touching cell data.
func (p *Pair) Swap() {
	p.Current, p.Next = p.Next, p.Current
}

func (p *Pair) Rows() int { return p.Current.Rows() }
func (p *Pair) Cols() int { return p.Current.Cols() }

// Resize reallocates both buffers, preserving each one's overlap. On error
// the pair is left untouched.
func (p *Pair) Resize(rows, cols int) error {
	cur, err := p.Current.Resize(rows, cols)
	if err != nil {
		return fmt.Errorf("current buffer: %w", err)
	}
	next, err := p.Next.Resize(rows, cols)
	if err != nil {
		return fmt.Errorf("next buffer: %w", err)
	}
	p.Current, p.Next = cur, next
	return nil
}

// Reset zeroes both buffers.
func (p *Pair) Reset() {
	p.Current.Clear()
	p.Next.Clear()
}
