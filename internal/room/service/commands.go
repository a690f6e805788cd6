package service

import (
	"IslandConquest/internal/room/app"
	"IslandConquest/internal/room/entity"
	"IslandConquest/internal/shared/gameconfig/unit"
)

// Move 瞬移到目标格并占领，只校验归属、行动力和边界。
// 任何校验失败都不改动房间。
func (s *RoomService) Move(room *entity.Room, pid entity.PlayerID, id entity.UnitID, to entity.Coord) error {
	if _, err := s.seat(room, pid); err != nil {
		return err
	}
	u, ok := room.Units().Get(id)
	if !ok {
		return app.Rejected(app.ReasonUnitNotFound)
	}
	if u.Owner != pid {
		return app.Rejected(app.ReasonNotUnitOwner)
	}
	if u.MoveLeft <= 0 {
		return app.Rejected(app.ReasonNoMovesLeft)
	}
	if !room.Grid().InBounds(to) {
		return app.Rejected(app.ReasonOutOfBounds)
	}
	if err := room.MoveUnit(id, to); err != nil {
		return app.ErrInternal.WithCause(err)
	}
	return nil
}

// Produce 扣费并在目标格生成满状态单位。
func (s *RoomService) Produce(room *entity.Room, pid entity.PlayerID, at entity.Coord, typ unit.Type) (entity.UnitID, error) {
	p, err := s.seat(room, pid)
	if err != nil {
		return 0, err
	}
	def, ok := unit.Lookup(typ)
	if !ok {
		return 0, app.Rejected(app.ReasonUnknownUnitType)
	}
	if !room.Grid().InBounds(at) {
		return 0, app.Rejected(app.ReasonOutOfBounds)
	}
	if !p.Resources.CanAfford(def.Cost) {
		return 0, app.Rejected(app.ReasonInsufficientResources)
	}
	if err := p.Resources.Spend(def.Cost); err != nil {
		return 0, app.Rejected(app.ReasonInsufficientResources)
	}
	id, err := room.SpawnUnit(pid, def, at)
	if err != nil {
		for r, n := range def.Cost {
			p.Resources.Add(r, n)
		}
		return 0, app.ErrInternal.WithCause(err)
	}
	return id, nil
}

// EndTurn 标记就绪，返回是否已全员就绪。
func (s *RoomService) EndTurn(room *entity.Room, pid entity.PlayerID) (bool, error) {
	if _, err := s.seat(room, pid); err != nil {
		return false, err
	}
	all, err := room.MarkReady(pid)
	if err != nil {
		return false, app.ErrNotInRoom
	}
	return all, nil
}
