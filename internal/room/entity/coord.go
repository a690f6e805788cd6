package entity

// PlayerID 房间内座位号 1..MaxPlayers，0 表示无主。
type PlayerID int

const (
	NoOwner    PlayerID = 0
	MaxPlayers          = 5
)

// Valid 判断是否为合法座位号。
func (p PlayerID) Valid() bool {
	return p >= 1 && p <= MaxPlayers
}

// Coord 网格坐标，可直接做 map key。
type Coord struct {
	Row int `json:"r" bson:"r"`
	Col int `json:"c" bson:"c"`
}

func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}
