package blocks

// run is the merge window of the script walker. The zero value is idle.
type run struct {
	kind   Kind
	nodes  []*Node
	length int
}

func (r *run) idle() bool {
	return len(r.nodes) == 0
}

// canExtend reports whether n may join the open run without pushing the
// summed statement length past limit.
func (r *run) canExtend(n *Node, limit int) bool {
	return !r.idle() && r.kind == n.Kind && r.length+n.Len() <= limit
}

func (r *run) extend(n *Node) {
	r.nodes = append(r.nodes, n)
	r.length += n.Len()
}

func (r *run) start(n *Node) {
	r.kind = n.Kind
	r.nodes = []*Node{n}
	r.length = n.Len()
}

// flush closes the run and returns its merged span, nil when idle.
func (r *run) flush() *Node {
	merged := Merge(r.nodes)
	*r = run{}
	return merged
}

func mergeable(k Kind) bool {
	return k == KindImportDeclaration || k == KindExportNamedDeclaration
}

// walkScript visits the top-level statements of the instance script.
//
// Adjacent import or named-export declarations of the same kind are merged
// while their summed length fits the window. Function declarations are
// expanded one level: the function, its body, its parameter list and each
// immediate body statement (conditionals also yield their test and both
// branches). Everything else is offered as is.
//
// A run still open when the statements end is dropped unless
// flushTrailing is set.
func (s *selector) walkScript(program *Node, flushTrailing bool) {
	if program == nil {
		return
	}

	var r run
	for _, st := range program.Statements {
		if st == nil {
			continue
		}

		switch {
		case mergeable(st.Kind):
			if r.canExtend(st, s.window.Max) {
				r.extend(st)
				continue
			}
			s.consider(r.flush())
			r.start(st)

		case st.Kind == KindFunctionDeclaration:
			s.consider(r.flush())
			s.selectFunction(st)

		default:
			s.consider(r.flush())
			s.consider(st)
		}
	}

	if flushTrailing {
		s.consider(r.flush())
	}
}

// selectFunction offers a function declaration and its immediate parts.
// Nested expressions inside the body are not visited.
func (s *selector) selectFunction(fn *Node) {
	s.consider(fn)

	if fn.Body != nil {
		s.consider(fn.Body)
	}

	if len(fn.Params) > 0 {
		first := fn.Params[0]
		last := fn.Params[len(fn.Params)-1]
		s.consider(Span(KindIdentifier, first.Start, last.End))
	}

	if fn.Body == nil || fn.Body.Kind != KindBlockStatement {
		return
	}
	for _, st := range fn.Body.Statements {
		if st == nil {
			continue
		}
		s.consider(st)
		if st.Kind == KindIfStatement {
			s.consider(st.Test)
			s.consider(st.Consequent)
			s.consider(st.Alternate)
		}
	}
}
