package tree

// Root and locked nodes never take part in a transform session.
func (n *Node) transformable() bool {
	return n != nil && !n.IsRoot() && !n.Locked
}

func (n *Node) AllowTranslate() bool { return n.transformable() && n.Designer.Translatable }
func (n *Node) AllowResize() bool    { return n.transformable() && n.Designer.Resizable }
func (n *Node) AllowRotate() bool    { return n.transformable() && n.Designer.Rotatable }
func (n *Node) AllowScale() bool     { return n.transformable() && n.Designer.Scalable }
func (n *Node) AllowRound() bool     { return n.transformable() && n.Designer.Roundable }

func filter(nodes []*Node, allow func(*Node) bool) []*Node {
	var result []*Node
	for _, n := range nodes {
		if allow(n) {
			result = append(result, n)
		}
	}
	return result
}

func FilterTranslatable(nodes []*Node) []*Node { return filter(nodes, (*Node).AllowTranslate) }
func FilterResizable(nodes []*Node) []*Node    { return filter(nodes, (*Node).AllowResize) }
func FilterRotatable(nodes []*Node) []*Node    { return filter(nodes, (*Node).AllowRotate) }
func FilterScalable(nodes []*Node) []*Node     { return filter(nodes, (*Node).AllowScale) }
func FilterRoundable(nodes []*Node) []*Node    { return filter(nodes, (*Node).AllowRound) }
