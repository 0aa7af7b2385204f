package menu

// FilterRoots returns, in registry order, the roots admitted by role.
// Children of an admitted root are kept as they are.
func FilterRoots(f Forest, role Role) Forest {
	out := make(Forest, 0, len(f))
	for _, n := range f {
		if n.Admits(role) {
			out = append(out, n)
		}
	}
	return out
}

// Walk visits nodes depth-first, a node before its children. Returning false
// from fn skips the node's subtree.
func Walk(f Forest, fn func(n Node, depth int) bool) {
	walk(f, 0, fn)
}

func walk(nodes []Node, depth int, fn func(Node, int) bool) {
	for _, n := range nodes {
		if fn(n, depth) {
			walk(n.Children, depth+1, fn)
		}
	}
}

// FindByID searches the whole forest depth-first and returns the first match.
func FindByID(f Forest, id string) (Node, bool) {
	path := PathTo(f, id)
	if path == nil {
		return Node{}, false
	}
	return path[len(path)-1], true
}

// Resolve is FindByID with the shell's fallback: an unknown id resolves to the
// first root. The bool reports whether id itself was found.
func Resolve(f Forest, id string) (Node, bool) {
	if n, ok := FindByID(f, id); ok {
		return n, true
	}
	if len(f) == 0 {
		return Node{}, false
	}
	return f[0], false
}

// PathTo returns the chain of nodes from a root down to id, or nil.
func PathTo(f Forest, id string) []Node {
	for _, n := range f {
		if path := pathTo(n, id, nil); path != nil {
			return path
		}
	}
	return nil
}

func pathTo(n Node, id string, prefix []Node) []Node {
	prefix = append(prefix, n)
	if n.ID == id {
		out := make([]Node, len(prefix))
		copy(out, prefix)
		return out
	}
	for _, c := range n.Children {
		if path := pathTo(c, id, prefix); path != nil {
			return path
		}
	}
	return nil
}

// IsOnActivePath reports whether id is n itself or any descendant of n.
func IsOnActivePath(n Node, id string) bool {
	if id == "" {
		return false
	}
	if n.ID == id {
		return true
	}
	for _, c := range n.Children {
		if IsOnActivePath(c, id) {
			return true
		}
	}
	return false
}

// UnderOffline reports whether any strict ancestor of id is offline. Nodes in
// such a subtree are shown but never interactive.
func UnderOffline(f Forest, id string) bool {
	path := PathTo(f, id)
	if len(path) < 2 {
		return false
	}
	for _, n := range path[:len(path)-1] {
		if !n.Online {
			return true
		}
	}
	return false
}
