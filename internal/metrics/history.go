package metrics

// History keeps the most recent samples of a metric, oldest first.
type History struct {
	capacity int
	values   []float64
}

func NewHistory(capacity int) *History {
	return &History{capacity: capacity, values: make([]float64, 0, capacity)}
}

func (h *History) Push(v float64) {
	if len(h.values) == h.capacity {
		copy(h.values, h.values[1:])
		h.values = h.values[:len(h.values)-1]
	}
	h.values = append(h.values, v)
}

func (h *History) Values() []float64 { return h.values }
func (h *History) Len() int          { return len(h.values) }
func (h *History) Reset()            { h.values = h.values[:0] }

func (h *History) Last() float64 {
	if len(h.values) == 0 {
		return 0
	}
	return h.values[len(h.values)-1]
}
