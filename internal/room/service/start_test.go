package service

import (
	"errors"
	"testing"
	"time"

	"IslandConquest/internal/game/domain"
	"IslandConquest/internal/room/app"
	"IslandConquest/internal/room/entity"
	"IslandConquest/internal/shared/gameconfig/unit"
)

func TestJoin_默认名字与满员(t *testing.T) {
	svc := NewRoomService(Rules{})
	room := svc.NewRoom("001AA", time.Now())
	p, err := svc.Join(room, "  ")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if p.Name() != "Player" || p.ID() != 1 {
		t.Fatalf("期望默认名 Player 座位 1, got=%q %d", p.Name(), p.ID())
	}
	for i := 0; i < entity.MaxPlayers-1; i++ {
		if _, err := svc.Join(room, "x"); err != nil {
			t.Fatalf("Join: %v", err)
		}
	}
	if _, err := svc.Join(room, "x"); !errors.Is(err, app.ErrRoomFull) {
		t.Fatalf("期望 ErrRoomFull, got=%v", err)
	}
}

func TestStart_生成地图并放置初始步兵(t *testing.T) {
	svc := NewRoomService(Rules{})
	room := svc.NewRoom("001AA", time.Unix(0, 0))
	_, _ = svc.Join(room, "a")
	_, _ = svc.Join(room, "b")

	now := time.Unix(50, 0)
	if err := svc.Start(room, 1, NewRand(7), now); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !room.Started() || room.Turn() != 1 || !room.TurnStartedAt().Equal(now) {
		t.Fatalf("开局状态不对 started=%v turn=%d", room.Started(), room.Turn())
	}
	if room.Grid().Rows() != DefaultRows || room.Grid().Cols() != DefaultCols {
		t.Fatalf("地图尺寸不对")
	}
	if len(room.Points()) != DefaultResourcePoints {
		t.Fatalf("期望 40 个资源点, got=%d", len(room.Points()))
	}
	if room.Units().Len() != 2 {
		t.Fatalf("期望 2 个初始单位, got=%d", room.Units().Len())
	}
	for _, p := range room.Players() {
		if p.StartPos == nil {
			t.Fatalf("玩家 %d 没有出生点", p.ID())
		}
		if !room.Grid().IsLand(*p.StartPos) || !room.OwnedBy(*p.StartPos, p.ID()) {
			t.Fatalf("玩家 %d 出生点应为己方陆地", p.ID())
		}
		if p.Resources != domain.StartingLedger() {
			t.Fatalf("开局资源不对: %+v", p.Resources)
		}
	}
	room.Units().Each(func(u *entity.Unit) {
		if u.Type != unit.Infantry || u.HP != 6 || u.MoveLeft != 2 {
			t.Fatalf("初始单位不对: %+v", u)
		}
	})
	checkPartition(t, room)

	if err := svc.Start(room, 1, NewRand(7), now); !errors.Is(err, app.ErrRoomStarted) {
		t.Fatalf("期望重复开局被拒绝, got=%v", err)
	}
	if _, err := svc.Join(room, "late"); !errors.Is(err, app.ErrRoomStarted) {
		t.Fatalf("期望开局后不能加入, got=%v", err)
	}
}

func TestStart_非房主与非成员(t *testing.T) {
	svc := NewRoomService(Rules{})
	room := svc.NewRoom("001AA", time.Now())
	_, _ = svc.Join(room, "a")
	_, _ = svc.Join(room, "b")
	if err := svc.Start(room, 2, NewRand(1), time.Now()); !errors.Is(err, app.ErrNotHost) {
		t.Fatalf("期望 ErrNotHost, got=%v", err)
	}
	if err := svc.Start(room, 4, NewRand(1), time.Now()); !errors.Is(err, app.ErrNotInRoom) {
		t.Fatalf("期望 ErrNotInRoom, got=%v", err)
	}
	if room.Started() {
		t.Fatalf("不应开局")
	}
}

func TestStart_地图生成失败仍在大厅(t *testing.T) {
	svc := NewRoomService(Rules{Rows: 3, Cols: 3, ResourcePoints: 40})
	room := svc.NewRoom("001AA", time.Now())
	_, _ = svc.Join(room, "a")
	if err := svc.Start(room, 1, NewRand(1), time.Now()); !errors.Is(err, app.ErrMapGeneration) {
		t.Fatalf("期望 ErrMapGeneration, got=%v", err)
	}
	if room.Started() || room.Units().Len() != 0 {
		t.Fatalf("失败后应保持大厅状态")
	}
	if _, err := svc.Join(room, "b"); err != nil {
		t.Fatalf("失败后应仍可加入: %v", err)
	}
}

func TestFindLandNear_逐圈扩大(t *testing.T) {
	g := entity.NewGrid(10, 10)
	g.SetLand(entity.At(4, 2), true)
	g.SetLand(entity.At(2, 4), true)
	got, ok := FindLandNear(g, entity.At(2, 2), startSearchRadius)
	if !ok || got != entity.At(2, 4) {
		t.Fatalf("期望 (2,4), got=%v ok=%v", got, ok)
	}
	if _, ok := FindLandNear(entity.NewGrid(5, 5), entity.At(2, 2), startSearchRadius); ok {
		t.Fatalf("全海地图不应找到陆地")
	}
}

func TestStartSeeds_四角与中心(t *testing.T) {
	s := StartSeeds(32, 64)
	want := []entity.Coord{{Row: 2, Col: 2}, {Row: 29, Col: 2}, {Row: 29, Col: 61}, {Row: 2, Col: 61}, {Row: 16, Col: 32}}
	for i := range want {
		if s[i] != want[i] {
			t.Fatalf("seed[%d]=%v want=%v", i, s[i], want[i])
		}
	}
}
