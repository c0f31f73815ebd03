package cellpool

// Slice is a non-owning 2D view over a pool-allocated run of cells.
// Multiple slices never overlap. All bounds checks are total: Get and OOB
// never index outside buf.
type Slice struct {
	buf        []Cell
	resolution int
}

// NewSlice wraps buf (which must hold resolution*resolution cells) as a
// square 2D view.
func NewSlice(buf []Cell, resolution int) *Slice {
	return &Slice{buf: buf, resolution: resolution}
}

// Resolution returns the edge length of the square view.
func (s *Slice) Resolution() int {
	return s.resolution
}

// OOB reports whether p falls outside [0, resolution) on either axis.
func (s *Slice) OOB(p Vec2i) bool {
	return p.X < 0 || p.Y < 0 || p.X >= s.resolution || p.Y >= s.resolution
}

// Get returns the cell at p and true, or (nil, false) when p is out of
// bounds. Callers must check the boolean; the pointer is nil on failure.
func (s *Slice) Get(p Vec2i) (*Cell, bool) {
	if s.OOB(p) {
		return nil, false
	}
	return &s.buf[p.Y*s.resolution+p.X], true
}
