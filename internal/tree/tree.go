package tree

import (
	"errors"
	"fmt"

	"github.com/inamate/snapkit/internal/geometry"
)

var ErrNoRoot = errors.New("document has no root node")

// Node is a live element of the layout tree. Geometry is read through the
// offset-rect accessors; the transform helper never looks past them.
type Node struct {
	ID        string
	Parent    *Node
	Children  []*Node
	Translate geometry.Point
	Size      geometry.Size
	Rotate    float64
	Scale     float64
	Radius    float64
	Hidden    bool
	Locked    bool
	Designer  Capabilities
}

// Tree indexes the nodes of a document by id.
type Tree struct {
	Root      *Node
	NodesByID map[string]*Node
	doc       *Document
}

// Build creates a node tree from a document. Children that reference
// missing records are skipped.
func Build(doc *Document) (*Tree, error) {
	rec, ok := doc.Nodes[doc.Root]
	if !ok {
		return nil, ErrNoRoot
	}
	t := &Tree{NodesByID: make(map[string]*Node), doc: doc}
	t.Root = t.buildNode(&rec, nil)
	return t, nil
}

func (t *Tree) buildNode(rec *NodeRecord, parent *Node) *Node {
	node := &Node{
		ID:        rec.ID,
		Parent:    parent,
		Translate: rec.Translate,
		Size:      rec.Size,
		Rotate:    rec.Rotate,
		Scale:     rec.Scale,
		Radius:    rec.Radius,
		Hidden:    rec.Hidden,
		Locked:    rec.Locked,
		Designer:  rec.Designer,
	}
	if node.Scale == 0 {
		node.Scale = 1
	}
	t.NodesByID[node.ID] = node

	for _, childID := range rec.Children {
		child, ok := t.doc.Nodes[childID]
		if !ok || t.NodesByID[childID] != nil {
			continue
		}
		node.Children = append(node.Children, t.buildNode(&child, node))
	}
	return node
}

// FindByID returns the node with the given id, or nil.
func (t *Tree) FindByID(id string) *Node {
	return t.NodesByID[id]
}

// FindAll resolves ids to nodes, skipping unknown ids and keeping order.
func (t *Tree) FindAll(ids []string) []*Node {
	nodes := make([]*Node, 0, len(ids))
	for _, id := range ids {
		if n := t.FindByID(id); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// EachTree visits every node depth-first, parents before children.
func (t *Tree) EachTree(fn func(*Node)) {
	var walk func(*Node)
	walk = func(n *Node) {
		fn(n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	if t.Root != nil {
		walk(t.Root)
	}
}

// Document writes the current node geometry back into the source document.
func (t *Tree) Document() *Document {
	for id, n := range t.NodesByID {
		rec, ok := t.doc.Nodes[id]
		if !ok {
			continue
		}
		rec.Translate = n.Translate
		rec.Size = n.Size
		rec.Rotate = n.Rotate
		rec.Scale = n.Scale
		rec.Radius = n.Radius
		t.doc.Nodes[id] = rec
	}
	return t.doc
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// LocalMatrix maps the node's own box into its parent's coordinates.
func (n *Node) LocalMatrix() geometry.Matrix2D {
	return geometry.FromTransform(
		n.Translate.X, n.Translate.Y,
		n.Scale, n.Scale,
		n.Rotate,
		n.Size.Width/2, n.Size.Height/2,
	)
}

// WorldMatrix maps the node's own box into viewport-offset coordinates.
func (n *Node) WorldMatrix() geometry.Matrix2D {
	m := n.LocalMatrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().Multiply(m)
	}
	return m
}

// Visible reports whether the node and all its ancestors are shown.
func (n *Node) Visible() bool {
	for p := n; p != nil; p = p.Parent {
		if p.Hidden {
			return false
		}
	}
	return true
}

// OffsetRect returns the axis-aligned bounds of the node in offset
// coordinates. Hidden or zero-sized nodes cannot be measured.
func (n *Node) OffsetRect() (geometry.Rect, bool) {
	if n == nil || !n.Visible() || n.Size.Width <= 0 && n.Size.Height <= 0 {
		return geometry.Rect{}, false
	}
	box := geometry.Rect{Width: n.Size.Width, Height: n.Size.Height}
	return n.WorldMatrix().TransformRect(box), true
}

// ValidOffsetRect is OffsetRect degraded to the zero rect when the node
// cannot be measured.
func (n *Node) ValidOffsetRect() geometry.Rect {
	r, _ := n.OffsetRect()
	return r
}

// Bounds returns the union of offset rects of the given nodes.
func Bounds(nodes []*Node) geometry.Rect {
	rects := make([]geometry.Rect, 0, len(nodes))
	for _, n := range nodes {
		if r, ok := n.OffsetRect(); ok {
			rects = append(rects, r)
		}
	}
	return geometry.UnionRects(rects...)
}

// SetRect applies a parent-relative rect: x/y become the translate and
// width/height the size. Negative sizes are clamped to zero.
func (n *Node) SetRect(r geometry.Rect) {
	n.Translate = geometry.Point{X: r.X, Y: r.Y}
	n.Size = geometry.Size{Width: max(r.Width, 0), Height: max(r.Height, 0)}
}

func (n *Node) String() string {
	return fmt.Sprintf("%s(%g,%g %gx%g)", n.ID, n.Translate.X, n.Translate.Y, n.Size.Width, n.Size.Height)
}

// HitTest returns the topmost visible, non-root node whose offset rect
// contains p, or nil.
func (t *Tree) HitTest(p geometry.Point) *Node {
	if t.Root == nil {
		return nil
	}
	return hitTestNode(t.Root, p)
}

// hitTestNode tests children first; later children paint on top.
func hitTestNode(node *Node, p geometry.Point) *Node {
	if node.Hidden {
		return nil
	}
	for i := len(node.Children) - 1; i >= 0; i-- {
		if hit := hitTestNode(node.Children[i], p); hit != nil {
			return hit
		}
	}
	if node.IsRoot() {
		return nil
	}
	if r, ok := node.OffsetRect(); ok && r.Contains(p) {
		return node
	}
	return nil
}
