package gamemap

// TileType identifies the terrain of a map cell.
type TileType uint8

const (
	TileWall TileType = iota
	TileFloor
)

func (t TileType) String() string {
	if t == TileFloor {
		return "floor"
	}
	return "wall"
}

// Transparent reports whether light passes through the tile.
func (t TileType) Transparent() bool { return t == TileFloor }
