package messages

import "IslandConquest/internal/game/domain"

type TileView struct {
	IsLand bool `json:"isLand"`
	Owner  int  `json:"owner,omitempty"`
}

type CoordView struct {
	R int `json:"r"`
	C int `json:"c"`
}

type UnitView struct {
	ID           uint64 `json:"id"`
	Owner        int    `json:"owner"`
	Type         string `json:"type"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	MoveLeft     int    `json:"moveLeft"`
	HP           int    `json:"hp"`
	SeaTransport bool   `json:"seaTransport"`
}

type ResourcePointView struct {
	R    int    `json:"r"`
	C    int    `json:"c"`
	Type string `json:"type"`
}

type PlayerInfo struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
}

// GameView 推送给单个玩家的全量状态。公共部分在同一次广播内共享，不要修改。
type GameView struct {
	RoomID         string              `json:"room_id"`
	Started        bool                `json:"started"`
	Map            [][]TileView        `json:"map"`
	Units          []UnitView          `json:"units"`
	ResourcePoints []ResourcePointView `json:"resourcePoints"`
	Turn           int                 `json:"turn"`
	Territories    map[int][]CoordView `json:"territories"`
	TurnStartedAt  int64               `json:"turn_started_at"`
	TurnDeadline   int64               `json:"turn_deadline"`

	SelfID        int           `json:"self_id"`
	SelfResources domain.Ledger `json:"self_resources"`
	PlayersInfo   []PlayerInfo  `json:"players_info"`
	StartPos      *CoordView    `json:"start_pos"`
}
