package entity

// Fort 预留的要塞数据，当前规则不使用。
type Fort struct {
	Level int `json:"level"`
}

// Tile 单个格子。owner 只能通过 Room.Claim / Room.Release 修改。
type Tile struct {
	land  bool
	owner PlayerID
	fort  *Fort
}

func (t Tile) IsLand() bool    { return t.land }
func (t Tile) Owner() PlayerID { return t.owner }
func (t Tile) Fort() *Fort     { return t.fort }
func (t Tile) Owned() bool     { return t.owner != NoOwner }

// Grid 行优先的连续数组。
type Grid struct {
	rows, cols int
	tiles      []Tile
}

// NewGrid 创建全海洋、无主的网格。
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid{rows: rows, cols: cols, tiles: make([]Tile, rows*cols)}
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Len() int  { return len(g.tiles) }

func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Index 调用方保证 InBounds。
func (g *Grid) Index(c Coord) int {
	return c.Row*g.cols + c.Col
}

func (g *Grid) CoordOf(idx int) Coord {
	return Coord{Row: idx / g.cols, Col: idx % g.cols}
}

// Tile 越界返回零值 Tile（海洋、无主）。
func (g *Grid) Tile(c Coord) Tile {
	if !g.InBounds(c) {
		return Tile{}
	}
	return g.tiles[g.Index(c)]
}

func (g *Grid) IsLand(c Coord) bool {
	return g.Tile(c).land
}

// SetLand 只在地图生成阶段使用。
func (g *Grid) SetLand(c Coord, land bool) {
	if !g.InBounds(c) {
		return
	}
	g.tiles[g.Index(c)].land = land
}

// LandCount 陆地格数量。
func (g *Grid) LandCount() int {
	n := 0
	for i := range g.tiles {
		if g.tiles[i].land {
			n++
		}
	}
	return n
}

// EqualTerrain 只比较地形，不比较所有权。
func (g *Grid) EqualTerrain(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for i := range g.tiles {
		if g.tiles[i].land != o.tiles[i].land {
			return false
		}
	}
	return true
}

func (g *Grid) setOwner(idx int, pid PlayerID) {
	g.tiles[idx].owner = pid
}
