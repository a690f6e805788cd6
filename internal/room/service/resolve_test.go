package service

import (
	"slices"
	"testing"
	"time"

	"IslandConquest/internal/game/domain"
	"IslandConquest/internal/room/entity"
	"IslandConquest/internal/shared/gameconfig/unit"
)

func TestCollectIncome_资源点与人力(t *testing.T) {
	room := startedRoom(t, 2)
	_ = room.Claim(entity.At(0, 0), 1) // 粮食点
	_ = room.Claim(entity.At(0, 1), 1)
	_ = room.Claim(entity.At(0, 2), 1)
	_ = room.Claim(entity.At(0, 7), 1) // 海
	_ = room.Claim(entity.At(5, 5), 2) // 石油点

	CollectIncome(room)

	p1 := mustPlayer(t, room, 1).Resources
	base := domain.StartingLedger()
	if p1.Fund != base.Fund+120 || p1.Food != base.Food+40 || p1.Manpower != base.Manpower+10 {
		t.Fatalf("1 号收入不对: %+v", p1)
	}
	if p1.Steel != base.Steel || p1.Oil != base.Oil {
		t.Fatalf("1 号不应有钢铁/石油收入: %+v", p1)
	}
	p2 := mustPlayer(t, room, 2).Resources
	if p2.Fund != base.Fund+120 || p2.Oil != base.Oil+25 || p2.Manpower != base.Manpower {
		t.Fatalf("2 号收入不对: %+v", p2)
	}
}

func TestCombat_两方同格同时结算(t *testing.T) {
	room := startedRoom(t, 2)
	a := spawn(t, room, 1, unit.Infantry, entity.At(2, 2))
	b := spawn(t, room, 2, unit.Infantry, entity.At(2, 2))

	// a 打 b 掷出 6，b 打 a 掷出 3
	rng := &scriptedRand{ints: []int{0, 5, 0, 2}}
	hits := PlanCombat(room, rng)
	if len(hits) != 2 {
		t.Fatalf("期望 2 次攻击, got=%d", len(hits))
	}
	if hits[0] != (Hit{Attacker: a, Target: b, Damage: 6}) || hits[1] != (Hit{Attacker: b, Target: a, Damage: 3}) {
		t.Fatalf("攻击计划不对: %+v", hits)
	}
	killed := ApplyHits(room, hits)
	if killed != 1 {
		t.Fatalf("期望阵亡 1, got=%d", killed)
	}
	ua, ok := room.Units().Get(a)
	if !ok || ua.HP != 3 {
		t.Fatalf("a 应剩 3 血, got=%+v", ua)
	}
	if _, ok := room.Units().Get(b); ok {
		t.Fatalf("b 应阵亡")
	}
}

func TestCombat_同归于尽(t *testing.T) {
	room := startedRoom(t, 2)
	spawn(t, room, 1, unit.Infantry, entity.At(2, 2))
	spawn(t, room, 2, unit.Infantry, entity.At(2, 2))
	hits := PlanCombat(room, &scriptedRand{ints: []int{0, 5, 0, 5}})
	if ApplyHits(room, hits) != 2 || room.Units().Len() != 0 {
		t.Fatalf("期望双方都阵亡, 剩余=%d", room.Units().Len())
	}
}

func TestCombat_结算与顺序无关(t *testing.T) {
	build := func() *entity.Room {
		room := startedRoom(t, 3)
		spawn(t, room, 1, unit.Infantry, entity.At(1, 1))
		spawn(t, room, 2, unit.Tank, entity.At(1, 1))
		spawn(t, room, 3, unit.Artillery, entity.At(1, 1))
		spawn(t, room, 1, unit.Infantry, entity.At(4, 4))
		spawn(t, room, 2, unit.Infantry, entity.At(4, 4))
		return room
	}
	script := []int{1, 3, 0, 4, 1, 5, 0, 2, 0, 1}

	r1 := build()
	hits := PlanCombat(r1, &scriptedRand{ints: slices.Clone(script)})
	ApplyHits(r1, hits)

	r2 := build()
	rev := PlanCombat(r2, &scriptedRand{ints: slices.Clone(script)})
	slices.Reverse(rev)
	ApplyHits(r2, rev)

	u1, u2 := r1.Units().All(), r2.Units().All()
	if len(u1) != len(u2) {
		t.Fatalf("存活数不同 %d vs %d", len(u1), len(u2))
	}
	for i := range u1 {
		if u1[i] != u2[i] {
			t.Fatalf("结果不同 %+v vs %+v", u1[i], u2[i])
		}
	}
}

func TestCombat_同一方同格不打(t *testing.T) {
	room := startedRoom(t, 2)
	spawn(t, room, 1, unit.Infantry, entity.At(2, 2))
	spawn(t, room, 1, unit.Tank, entity.At(2, 2))
	spawn(t, room, 2, unit.Tank, entity.At(3, 3))
	if hits := PlanCombat(room, &scriptedRand{}); len(hits) != 0 {
		t.Fatalf("无争夺格子不应有攻击: %+v", hits)
	}
}

func TestRecover_回满行动力并在己方领地回血(t *testing.T) {
	room := startedRoom(t, 2)
	home := spawn(t, room, 1, unit.Infantry, entity.At(1, 1))
	away := spawn(t, room, 1, unit.Infantry, entity.At(2, 2))
	_ = room.Claim(entity.At(2, 2), 2)
	for _, id := range []entity.UnitID{home, away} {
		u, _ := room.Units().Get(id)
		u.HP = 3
		u.MoveLeft = 0
	}

	healed := Recover(room, &scriptedRand{floats: []float64{0.1, 0.1}})
	if healed != 1 {
		t.Fatalf("期望回血 1 个, got=%d", healed)
	}
	uh, _ := room.Units().Get(home)
	ua, _ := room.Units().Get(away)
	if uh.HP != 4 || ua.HP != 3 {
		t.Fatalf("回血不对 home=%d away=%d", uh.HP, ua.HP)
	}
	if uh.MoveLeft != 2 || ua.MoveLeft != 2 {
		t.Fatalf("行动力应回满")
	}

	// 0.5 不满足 < 0.5
	Recover(room, &scriptedRand{floats: []float64{0.5}})
	if uh, _ = room.Units().Get(home); uh.HP != 4 {
		t.Fatalf("概率未命中不应回血")
	}
}

func TestRecover_满血不回血(t *testing.T) {
	room := startedRoom(t, 1)
	id := spawn(t, room, 1, unit.Infantry, entity.At(1, 1))
	Recover(room, &scriptedRand{floats: []float64{0.0}})
	if u, _ := room.Units().Get(id); u.HP != 6 {
		t.Fatalf("不应超过上限, got=%d", u.HP)
	}
}

func TestEliminate_无陆地出局且幂等(t *testing.T) {
	room := startedRoom(t, 2)
	spawn(t, room, 1, unit.Infantry, entity.At(1, 1))
	spawn(t, room, 2, unit.Battleship, entity.At(0, 7)) // 海
	spawn(t, room, 2, unit.Submarine, entity.At(1, 7))

	out := Eliminate(room)
	if len(out) != 1 || out[0] != 2 {
		t.Fatalf("期望 2 号出局, got=%v", out)
	}
	if room.Territory().Count(2) != 0 {
		t.Fatalf("2 号领地应清空")
	}
	if room.Grid().Tile(entity.At(0, 7)).Owned() {
		t.Fatalf("格子归属应清除")
	}
	room.Units().Each(func(u *entity.Unit) {
		if u.Owner == 2 {
			t.Fatalf("2 号单位应全部移除")
		}
	})
	if _, ok := room.Player(2); !ok {
		t.Fatalf("玩家本身应保留")
	}
	checkPartition(t, room)

	units := room.Units().Len()
	if again := Eliminate(room); len(again) != 0 || room.Units().Len() != units {
		t.Fatalf("重复执行应无变化 got=%v", again)
	}
}

func TestResolve_回合推进并清空就绪(t *testing.T) {
	svc := NewRoomService(Rules{})
	room := startedRoom(t, 2)
	spawn(t, room, 1, unit.Infantry, entity.At(0, 0))
	spawn(t, room, 2, unit.Infantry, entity.At(5, 5))
	_, _ = svc.EndTurn(room, 1)

	now := time.Unix(300, 0)
	rep := svc.Resolve(room, NewRand(3), TriggerDeadline, now)
	if rep.Turn != 2 || room.Turn() != 2 {
		t.Fatalf("期望回合 2, got=%d", room.Turn())
	}
	if rep.Trigger != TriggerDeadline {
		t.Fatalf("trigger=%s", rep.Trigger)
	}
	if room.ReadyCount() != 0 {
		t.Fatalf("就绪集合应清空")
	}
	if !room.TurnStartedAt().Equal(now) {
		t.Fatalf("回合开始时间应重置")
	}
	checkPartition(t, room)
	checkLedgers(t, room)
}

func TestScenario_同格生产后结算交战(t *testing.T) {
	svc := NewRoomService(Rules{})
	room := startedRoom(t, 2)
	at := entity.At(3, 3)
	a, err := svc.Produce(room, 1, at, unit.Infantry)
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	b, err := svc.Produce(room, 2, at, unit.Infantry)
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	// 后生产的一方占领该格，1 号没有陆地会在结算时出局
	_ = room.Claim(entity.At(0, 1), 1)

	rep := svc.Resolve(room, NewRand(11), TriggerAllReady, time.Unix(1, 0))
	if len(rep.Hits) != 2 {
		t.Fatalf("期望双方各掷一次, got=%d", len(rep.Hits))
	}
	for _, h := range rep.Hits {
		if h.Damage < 1 || h.Damage > 6 {
			t.Fatalf("伤害越界: %d", h.Damage)
		}
	}
	for _, id := range []entity.UnitID{a, b} {
		var dmg int
		for _, h := range rep.Hits {
			if h.Target == id {
				dmg += h.Damage
			}
		}
		u, alive := room.Units().Get(id)
		if dmg >= 6 && alive {
			t.Fatalf("累计伤害 %d 应阵亡", dmg)
		}
		if dmg < 6 && (!alive || u.HP < 6-dmg) {
			t.Fatalf("累计伤害 %d 不应阵亡 alive=%v", dmg, alive)
		}
	}
	checkPartition(t, room)
	checkLedgers(t, room)
}

func TestBuildViews_个人字段与公共字段(t *testing.T) {
	room := startedRoom(t, 2)
	spawn(t, room, 1, unit.Infantry, entity.At(1, 2))
	pos := entity.At(1, 2)
	mustPlayer(t, room, 1).StartPos = &pos
	if _, err := room.MarkReady(2); err != nil {
		t.Fatalf("MarkReady: %v", err)
	}

	views := BuildViews(room, 180*time.Second)
	if len(views) != 2 {
		t.Fatalf("期望 2 份视图")
	}
	v1, v2 := views[1], views[2]
	if v1.SelfID != 1 || v2.SelfID != 2 {
		t.Fatalf("self_id 不对")
	}
	if v1.StartPos == nil || v1.StartPos.R != 1 || v1.StartPos.C != 2 || v2.StartPos != nil {
		t.Fatalf("start_pos 不对")
	}
	if len(v1.Units) != 1 || v1.Units[0].X != 2 || v1.Units[0].Y != 1 {
		t.Fatalf("单位坐标 x=列 y=行: %+v", v1.Units)
	}
	if !v1.Map[1][2].IsLand || v1.Map[1][2].Owner != 1 || v1.Map[0][7].IsLand {
		t.Fatalf("地图不对")
	}
	if len(v1.Territories[1]) != 1 || len(v1.Territories[2]) != 0 {
		t.Fatalf("领地不对: %+v", v1.Territories)
	}
	if v1.TurnDeadline-v1.TurnStartedAt != 180_000 {
		t.Fatalf("deadline 不对")
	}
	if len(v1.PlayersInfo) != 2 || len(v1.ResourcePoints) != 2 {
		t.Fatalf("公共字段不对")
	}
	if v1.PlayersInfo[0].Ready || !v1.PlayersInfo[1].Ready {
		t.Fatalf("就绪标记不对: %+v", v1.PlayersInfo)
	}
	if _, ok := BuildView(room, 4, time.Minute); ok {
		t.Fatalf("不存在的座位不应有视图")
	}
}
