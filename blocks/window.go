package blocks

const (
	// MinSpan is the smallest span worth masking.
	MinSpan = 10

	// minMaxSpan is the floor of the per-file upper bound.
	minMaxSpan = 30
)

// Window is the accepted span length range for one file.
type Window struct {
	Min int
	Max int
}

// NewWindow returns the window for a file of the given byte length:
// [MinSpan, max(length/10, 30)].
func NewWindow(length int) Window {
	return Window{
		Min: MinSpan,
		Max: max(length/10, minMaxSpan),
	}
}

// Accepts reports whether n has a span inside the window.
func (w Window) Accepts(n *Node) bool {
	if !n.HasSpan() {
		return false
	}
	span := n.End - n.Start
	return span >= w.Min && span <= w.Max
}

// Merge fuses a run of adjacent nodes into one span from the first node's
// start to the last node's end, typed after the first node. It returns nil
// for an empty run. The result is not filtered.
func Merge(nodes []*Node) *Node {
	if len(nodes) == 0 {
		return nil
	}
	first := nodes[0]
	last := nodes[len(nodes)-1]
	return Span(first.Kind, first.Start, last.End)
}

// selector accumulates accepted nodes in selection order.
type selector struct {
	window   Window
	selected []*Node
}

// consider appends n to the selection when the window accepts it.
func (s *selector) consider(n *Node) bool {
	if !s.window.Accepts(n) {
		return false
	}
	s.selected = append(s.selected, n)
	return true
}
