package syntax

// LeafAt returns the leaf under root that contains offset.
//
// An offset on a child's end boundary, or at the end of root, resolves to
// the nearest preceding leaf. An offset strictly inside a gap between
// children (whitespace the grammar does not represent) resolves to the
// smallest node containing it, which is then not a leaf. Returns nil if
// root is nil or offset lies outside root's range.
func LeafAt(root Node, offset int) Node {
	if root == nil {
		return nil
	}
	r := root.Range()
	if offset < r.Start || offset > r.End {
		return nil
	}
	eof := offset == r.End

	n := root
	for {
		var hit, prev Node
		for _, c := range n.Children() {
			if c == nil {
				continue
			}
			cr := c.Range()
			if cr.Start > offset {
				break
			}
			if offset < cr.End {
				hit = c
				break
			}
			if eof || cr.End == offset {
				prev = c
			}
		}
		switch {
		case hit != nil:
			n = hit
		case prev != nil:
			n = prev
		default:
			return n
		}
	}
}

// Ancestors calls fn for each ancestor of n, nearest first, until fn
// returns false or the root is passed.
func Ancestors(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if !fn(p) {
			return
		}
	}
}
