package service

import (
	"time"

	"IslandConquest/internal/room/entity"
	"IslandConquest/internal/shared/actor/messages"
)

// BuildViews 为房间内每个玩家生成推送内容，公共部分只构建一次。
func BuildViews(room *entity.Room, turnTimeout time.Duration) map[entity.PlayerID]*messages.GameView {
	base := buildCommon(room, turnTimeout)
	infos := playersInfo(room)
	out := make(map[entity.PlayerID]*messages.GameView, room.PlayerCount())
	for _, p := range room.Players() {
		out[p.ID()] = personalize(base, infos, p)
	}
	return out
}

// BuildView 单个座位的视角；座位不存在返回 false。
func BuildView(room *entity.Room, pid entity.PlayerID, turnTimeout time.Duration) (*messages.GameView, bool) {
	p, ok := room.Player(pid)
	if !ok {
		return nil, false
	}
	return personalize(buildCommon(room, turnTimeout), playersInfo(room), p), true
}

func personalize(base messages.GameView, infos []messages.PlayerInfo, p *entity.Player) *messages.GameView {
	v := base
	v.SelfID = int(p.ID())
	v.SelfResources = p.Resources
	v.PlayersInfo = infos
	if p.StartPos != nil {
		v.StartPos = &messages.CoordView{R: p.StartPos.Row, C: p.StartPos.Col}
	}
	return &v
}

func playersInfo(room *entity.Room) []messages.PlayerInfo {
	ps := room.Players()
	out := make([]messages.PlayerInfo, 0, len(ps))
	for _, p := range ps {
		out = append(out, messages.PlayerInfo{ID: int(p.ID()), Name: p.Name(), Ready: room.IsReady(p.ID())})
	}
	return out
}

func buildCommon(room *entity.Room, turnTimeout time.Duration) messages.GameView {
	g := room.Grid()
	v := messages.GameView{
		RoomID:      room.ID(),
		Started:     room.Started(),
		Turn:        room.Turn(),
		Territories: map[int][]messages.CoordView{},
	}
	if room.Started() {
		v.TurnStartedAt = room.TurnStartedAt().UnixMilli()
		v.TurnDeadline = room.TurnStartedAt().Add(turnTimeout).UnixMilli()
	}

	v.Map = make([][]messages.TileView, g.Rows())
	for r := 0; r < g.Rows(); r++ {
		row := make([]messages.TileView, g.Cols())
		for c := 0; c < g.Cols(); c++ {
			t := g.Tile(entity.At(r, c))
			row[c] = messages.TileView{IsLand: t.IsLand(), Owner: int(t.Owner())}
		}
		v.Map[r] = row
	}

	v.Units = make([]messages.UnitView, 0, room.Units().Len())
	room.Units().Each(func(u *entity.Unit) {
		v.Units = append(v.Units, messages.UnitView{
			ID:           uint64(u.ID),
			Owner:        int(u.Owner),
			Type:         string(u.Type),
			X:            u.Pos.Col,
			Y:            u.Pos.Row,
			MoveLeft:     u.MoveLeft,
			HP:           u.HP,
			SeaTransport: u.SeaTransport,
		})
	})

	points := room.Points()
	v.ResourcePoints = make([]messages.ResourcePointView, 0, len(points))
	for _, p := range points {
		v.ResourcePoints = append(v.ResourcePoints, messages.ResourcePointView{R: p.Row, C: p.Col, Type: string(p.Category)})
	}

	for _, p := range room.Players() {
		tiles := make([]messages.CoordView, 0, room.Territory().Count(p.ID()))
		room.Territory().Each(p.ID(), func(idx int) {
			c := g.CoordOf(idx)
			tiles = append(tiles, messages.CoordView{R: c.Row, C: c.Col})
		})
		v.Territories[int(p.ID())] = tiles
	}
	return v
}
