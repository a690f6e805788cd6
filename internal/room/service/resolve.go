package service

import (
	"time"

	"IslandConquest/internal/game/domain"
	"IslandConquest/internal/room/entity"
	"IslandConquest/internal/shared/gameconfig/unit"
)

const (
	manpowerPerTile = 5
	healChance      = 0.5
)

type Trigger string

const (
	TriggerAllReady Trigger = "all_ready"
	TriggerDeadline Trigger = "deadline"
)

// Report 一次回合结算的摘要。
type Report struct {
	Trigger    Trigger
	Turn       int // 结算后的新回合号
	Hits       []Hit
	Killed     int
	Healed     int
	Eliminated []entity.PlayerID
}

// Resolve 回合结算：收入、战斗、恢复、淘汰，最后回合号 +1。
// 计时器的撤销由调用方在进入结算前完成。
func (s *RoomService) Resolve(room *entity.Room, rng Rand, trigger Trigger, now time.Time) Report {
	room.ClearReady()

	CollectIncome(room)
	hits := PlanCombat(room, rng)
	killed := ApplyHits(room, hits)
	healed := Recover(room, rng)
	eliminated := Eliminate(room)

	room.AdvanceTurn(now)
	return Report{
		Trigger:    trigger,
		Turn:       room.Turn(),
		Hits:       hits,
		Killed:     killed,
		Healed:     healed,
		Eliminated: eliminated,
	}
}

// CollectIncome 资源点产出 fund 加副资源，其余陆地每格 +5 人力。
func CollectIncome(room *entity.Room) {
	g := room.Grid()
	for _, p := range room.Players() {
		room.Territory().Each(p.ID(), func(idx int) {
			c := g.CoordOf(idx)
			if !g.IsLand(c) {
				return
			}
			if rp, ok := room.PointAt(c); ok {
				fund, sec, amount := rp.Category.Yield()
				p.Resources.Add(domain.Fund, fund)
				p.Resources.Add(sec, amount)
				return
			}
			p.Resources.Add(domain.Manpower, manpowerPerTile)
		})
	}
	room.Touch()
}

// Recover 行动力回满；站在己方领地且掉血的单位有一半概率 +1 hp。
func Recover(room *entity.Room, rng Rand) int {
	healed := 0
	room.Units().Each(func(u *entity.Unit) {
		def := unit.MustLookup(u.Type)
		u.MoveLeft = def.Move
		if room.OwnedBy(u.Pos, u.Owner) && u.HP < def.HP && rng.Float64() < healChance {
			u.HP++
			healed++
		}
	})
	room.Touch()
	return healed
}

// Eliminate 没有陆地的玩家失去全部单位和领地。玩家本身保留。
// 对同一状态重复执行不再产生变化。
func Eliminate(room *entity.Room) []entity.PlayerID {
	var out []entity.PlayerID
	for _, p := range room.Players() {
		pid := p.ID()
		if room.LandCount(pid) > 0 {
			continue
		}
		removed := room.RemoveUnits(func(u *entity.Unit) bool { return u.Owner == pid })
		released := room.ReleaseAll(pid)
		if removed > 0 || released > 0 {
			out = append(out, pid)
		}
	}
	return out
}
