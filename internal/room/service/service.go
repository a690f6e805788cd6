package service

import (
	"errors"
	"strings"
	"time"

	"IslandConquest/internal/room/app"
	"IslandConquest/internal/room/entity"
	"IslandConquest/internal/shared/gameconfig/unit"
)

const (
	DefaultRows           = 32
	DefaultCols           = 64
	DefaultResourcePoints = 40
	defaultPlayerName     = "Player"
	startSearchRadius     = 30
)

type Rules struct {
	Rows           int
	Cols           int
	ResourcePoints int
}

func (r Rules) normalized() Rules {
	if r.Rows <= 0 {
		r.Rows = DefaultRows
	}
	if r.Cols <= 0 {
		r.Cols = DefaultCols
	}
	if r.ResourcePoints <= 0 {
		r.ResourcePoints = DefaultResourcePoints
	}
	return r
}

// RoomService 房间规则。无状态，所有状态都在 entity.Room 上，由调用方保证串行。
type RoomService struct {
	rules Rules
}

func NewRoomService(rules Rules) *RoomService {
	return &RoomService{rules: rules.normalized()}
}

func (s *RoomService) Rules() Rules {
	return s.rules
}

// NewRoom 大厅状态的空房间。
func (s *RoomService) NewRoom(id string, now time.Time) *entity.Room {
	return entity.NewRoom(id, s.rules.Rows, s.rules.Cols, now)
}

// Join 大厅阶段入座。
func (s *RoomService) Join(room *entity.Room, name string) (*entity.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultPlayerName
	}
	p, err := room.AddPlayer(name)
	switch {
	case errors.Is(err, entity.ErrRoomStarted):
		return nil, app.ErrRoomStarted
	case errors.Is(err, entity.ErrRoomFull):
		return nil, app.ErrRoomFull
	case err != nil:
		return nil, app.ErrInternal.WithCause(err)
	}
	return p, nil
}

// IsHost 房主是最早入座的玩家。
func IsHost(room *entity.Room, pid entity.PlayerID) bool {
	ps := room.Players()
	return len(ps) > 0 && ps[0].ID() == pid
}

// Start 生成地图并给每位玩家放一个步兵；失败时房间仍停留在大厅。
func (s *RoomService) Start(room *entity.Room, caller entity.PlayerID, rng Rand, now time.Time) error {
	if room.Started() {
		return app.ErrRoomStarted
	}
	if _, ok := room.Player(caller); !ok {
		return app.ErrNotInRoom
	}
	if !IsHost(room, caller) {
		return app.ErrNotHost
	}

	g, points, err := GenerateMap(rng, s.rules.Rows, s.rules.Cols, s.rules.ResourcePoints)
	if err != nil {
		return err
	}
	if err := room.InstallMap(g, points); err != nil {
		return app.ErrInternal.WithCause(err)
	}

	seeds := StartSeeds(g.Rows(), g.Cols())
	inf := unit.MustLookup(unit.Infantry)
	for i, p := range room.Players() {
		at, ok := FindLandNear(g, seeds[i%len(seeds)], startSearchRadius)
		if !ok {
			continue
		}
		if _, err := room.SpawnUnit(p.ID(), inf, at); err != nil {
			return app.ErrInternal.WithCause(err)
		}
		pos := at
		p.StartPos = &pos
	}
	room.MarkStarted(now)
	return nil
}

// StartSeeds 四角加中心，按入座顺序分配。
func StartSeeds(rows, cols int) []entity.Coord {
	return []entity.Coord{
		entity.At(2, 2),
		entity.At(rows-3, 2),
		entity.At(rows-3, cols-3),
		entity.At(2, cols-3),
		entity.At(rows/2, cols/2),
	}
}

// FindLandNear 以 seed 为中心逐圈扩大的方形搜索，返回第一个陆地格。
func FindLandNear(g *entity.Grid, seed entity.Coord, radius int) (entity.Coord, bool) {
	for rad := 0; rad < radius; rad++ {
		for dr := -rad; dr <= rad; dr++ {
			for dc := -rad; dc <= rad; dc++ {
				c := entity.At(seed.Row+dr, seed.Col+dc)
				if g.InBounds(c) && g.IsLand(c) {
					return c, true
				}
			}
		}
	}
	return entity.Coord{}, false
}

func (s *RoomService) seat(room *entity.Room, pid entity.PlayerID) (*entity.Player, error) {
	if !room.Started() {
		return nil, app.ErrNotStarted
	}
	p, ok := room.Player(pid)
	if !ok {
		return nil, app.ErrNotInRoom
	}
	return p, nil
}
