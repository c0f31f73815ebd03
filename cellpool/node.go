package cellpool

// Node associates a world-space origin with a Slice. It has no ownership
// beyond the slice handle; RenderHandle is an opaque slot a renderer
// collaborator may use to cache its own per-tile state. The core never
// reads or writes it.
type Node struct {
	Origin      Vec2i
	Slice       *Slice
	RenderHandle any
}

// Local converts a world-space position into this node's local coordinates.
func (n *Node) Local(world Vec2i) Vec2i {
	return Vec2i{world.X - n.Origin.X, world.Y - n.Origin.Y}
}
