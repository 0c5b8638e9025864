package blocks

// Options tunes block selection.
type Options struct {
	// FlushTrailingRun emits a run of merged imports or exports that is
	// still open at the end of the script. Off by default, which drops it.
	FlushTrailingRun bool
}

// Extract returns the critical blocks of doc in selection order: template
// nodes first, then script nodes. The same span may appear more than once.
func Extract(doc *Document, opts Options) []*Node {
	if doc == nil {
		return nil
	}

	s := &selector{window: NewWindow(doc.Length)}
	s.walkTemplate(doc.Template)
	s.walkScript(doc.Script, opts.FlushTrailingRun)
	return s.selected
}
