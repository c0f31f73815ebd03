package cellpool

import "fmt"

// Map is the world: a grid of mapSize*mapSize tiles, each tileSize*tileSize
// cells, tiling the plane starting at the origin.
type Map struct {
	Nodes    []*Node
	TileSize int
	MapSize  int
}

// NewMap reserves mapSize*mapSize tiles of tileSize*tileSize cells each
// from pool and lays them out in row-major tile order starting at (0,0).
func NewMap(pool *Pool, mapSize, tileSize int) (*Map, error) {
	if mapSize <= 0 || tileSize <= 0 {
		return nil, fmt.Errorf("cellpool: invalid map dimensions (map_size=%d, tile_size=%d)", mapSize, tileSize)
	}

	m := &Map{TileSize: tileSize, MapSize: mapSize}
	perTile := tileSize * tileSize

	for ty := 0; ty < mapSize; ty++ {
		for tx := 0; tx < mapSize; tx++ {
			buf, err := pool.Get(perTile)
			if err != nil {
				return nil, fmt.Errorf("cellpool: reserving tile (%d,%d): %w", tx, ty, err)
			}
			node := &Node{
				Origin: Vec2i{X: tx * tileSize, Y: ty * tileSize},
				Slice:  NewSlice(buf, tileSize),
			}
			m.Nodes = append(m.Nodes, node)
		}
	}

	return m, nil
}

// WorldSize returns the edge length of the whole world in cells.
func (m *Map) WorldSize() int {
	return m.MapSize * m.TileSize
}

// Get returns the node owning the given world position, or (nil, false)
// if no tile covers it. The check is total: it never indexes a node
// before confirming containment.
func (m *Map) Get(world Vec2i) (*Node, bool) {
	if world.X < 0 || world.Y < 0 {
		return nil, false
	}
	tx, ty := world.X/m.TileSize, world.Y/m.TileSize
	if tx >= m.MapSize || ty >= m.MapSize {
		return nil, false
	}
	return m.Nodes[ty*m.MapSize+tx], true
}

// CellAt resolves a world position straight to its cell, or (nil, false)
// when the position falls outside every tile.
func (m *Map) CellAt(world Vec2i) (*Cell, bool) {
	node, ok := m.Get(world)
	if !ok {
		return nil, false
	}
	return node.Slice.Get(node.Local(world))
}

// Each calls fn for every cell in the map, in tile-then-row-major order.
func (m *Map) Each(fn func(world Vec2i, c *Cell)) {
	for _, node := range m.Nodes {
		for y := 0; y < node.Slice.Resolution(); y++ {
			for x := 0; x < node.Slice.Resolution(); x++ {
				local := Vec2i{X: x, Y: y}
				c, _ := node.Slice.Get(local)
				fn(node.Origin.Add(local), c)
			}
		}
	}
}
