package blocks

// walkTemplate visits the markup tree depth-first, pre-order.
//
// Text is never selected nor descended. Nodes with a missing span are
// dropped together with their subtree. Every other node is offered to the
// window directly; template nodes are atomic enough that no merging happens
// here. Descent continues below rejected nodes.
func (s *selector) walkTemplate(n *Node) {
	if !n.HasSpan() {
		return
	}
	if n.Kind == KindText {
		return
	}

	s.consider(n)

	for _, edge := range n.StructuralChildren() {
		s.walkTemplate(edge.Node)
	}
}
