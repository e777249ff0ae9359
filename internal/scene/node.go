package scene

// Node is an element of the scene graph. Its Local transform is relative to
// its parent; a node without a parent is a root.
type Node struct {
	Name  string
	Local Transform

	parent   *Node
	children []*Node
}

// NewNode returns a parentless node with the identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Local: Identity()}
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Add attaches c under n, detaching it from any previous parent. The local
// transform of c is kept as is.
func (n *Node) Add(c *Node) {
	if c.parent == n {
		return
	}
	if c.parent != nil {
		c.parent.Remove(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

// Remove detaches c if it is a child of n.
func (n *Node) Remove(c *Node) bool {
	for i, k := range n.children {
		if k == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}

// World returns the transform from the local space of n into root space.
func (n *Node) World() Transform {
	if n.parent == nil {
		return n.Local
	}
	return n.parent.World().Compose(n.Local)
}

// SetWorld sets the local transform so that World returns w.
func (n *Node) SetWorld(w Transform) {
	if n.parent == nil {
		n.Local = w
		return
	}
	n.Local = n.parent.World().Relative(w)
}

// Reparent moves n under p while keeping its world transform.
func (n *Node) Reparent(p *Node) {
	w := n.World()
	p.Add(n)
	n.SetWorld(w)
}
