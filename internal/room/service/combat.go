package service

import (
	"slices"

	"IslandConquest/internal/room/entity"
)

const combatDie = 6

// Hit 一次掷骰结果。
type Hit struct {
	Attacker entity.UnitID
	Target   entity.UnitID
	Damage   int
}

// PlanCombat 按格子分组，对有多方单位的格子每个单位随机挑一个敌人掷 1..6。
// 只收集，不扣血。格子按下标升序、格内按 slot 顺序，保证随机数消耗顺序固定。
func PlanCombat(room *entity.Room, rng Rand) []Hit {
	g := room.Grid()
	groups := map[int][]*entity.Unit{}
	room.Units().Each(func(u *entity.Unit) {
		idx := g.Index(u.Pos)
		groups[idx] = append(groups[idx], u)
	})

	keys := make([]int, 0, len(groups))
	for k, us := range groups {
		if contested(us) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var hits []Hit
	for _, k := range keys {
		us := groups[k]
		for _, u := range us {
			enemies := make([]*entity.Unit, 0, len(us))
			for _, e := range us {
				if e.Owner != u.Owner {
					enemies = append(enemies, e)
				}
			}
			if len(enemies) == 0 {
				continue
			}
			target := enemies[rng.IntN(len(enemies))]
			hits = append(hits, Hit{
				Attacker: u.ID,
				Target:   target.ID,
				Damage:   1 + rng.IntN(combatDie),
			})
		}
	}
	return hits
}

func contested(us []*entity.Unit) bool {
	for _, u := range us[1:] {
		if u.Owner != us[0].Owner {
			return true
		}
	}
	return false
}

// ApplyHits 同时结算：先累计所有伤害，再移除 hp<=0 的单位。返回阵亡数。
func ApplyHits(room *entity.Room, hits []Hit) int {
	for _, h := range hits {
		if u, ok := room.Units().Get(h.Target); ok {
			u.HP -= h.Damage
		}
	}
	if len(hits) == 0 {
		return 0
	}
	room.Touch()
	return room.RemoveUnits(func(u *entity.Unit) bool { return u.HP <= 0 })
}
