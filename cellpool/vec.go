package cellpool

// Vec2i is an integer 2D grid coordinate.
type Vec2i struct {
	X, Y int
}

// Add returns the componentwise sum of v and o.
func (v Vec2i) Add(o Vec2i) Vec2i {
	return Vec2i{v.X + o.X, v.Y + o.Y}
}
