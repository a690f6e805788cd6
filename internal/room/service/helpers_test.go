package service

import (
	"testing"
	"time"

	"IslandConquest/internal/room/entity"
)

// scriptedRand 按脚本吐随机数，脚本用完后 IntN 返回 0、Float64 返回 0.99。
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// startedRoom 6x8 的测试地图：前 6 列陆地，后 2 列海。
func startedRoom(t *testing.T, players int) *entity.Room {
	t.Helper()
	room := entity.NewRoom("123AB", 6, 8, time.Unix(0, 0))
	for i := 0; i < players; i++ {
		if _, err := room.AddPlayer("p"); err != nil {
			t.Fatalf("AddPlayer: %v", err)
		}
	}
	g := entity.NewGrid(6, 8)
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			g.SetLand(entity.At(r, c), true)
		}
	}
	points := []entity.ResourcePoint{
		{Coord: entity.At(0, 0), Category: entity.PointFood},
		{Coord: entity.At(5, 5), Category: entity.PointOil},
	}
	if err := room.InstallMap(g, points); err != nil {
		t.Fatalf("InstallMap: %v", err)
	}
	room.MarkStarted(time.Unix(100, 0))
	return room
}

func mustPlayer(t *testing.T, room *entity.Room, pid entity.PlayerID) *entity.Player {
	t.Helper()
	p, ok := room.Player(pid)
	if !ok {
		t.Fatalf("玩家 %d 不存在", pid)
	}
	return p
}

func checkPartition(t *testing.T, room *entity.Room) {
	t.Helper()
	g := room.Grid()
	seen := map[int]entity.PlayerID{}
	for pid := entity.PlayerID(1); pid <= entity.MaxPlayers; pid++ {
		room.Territory().Each(pid, func(idx int) {
			if prev, ok := seen[idx]; ok {
				t.Fatalf("格子 %v 同时属于 %d 和 %d", g.CoordOf(idx), prev, pid)
			}
			seen[idx] = pid
		})
	}
	for idx := 0; idx < g.Len(); idx++ {
		if owner := g.Tile(g.CoordOf(idx)).Owner(); owner != seen[idx] {
			t.Fatalf("格子 %v owner=%d 索引=%d", g.CoordOf(idx), owner, seen[idx])
		}
	}
}

func checkLedgers(t *testing.T, room *entity.Room) {
	t.Helper()
	for _, p := range room.Players() {
		l := p.Resources
		if l.Fund < 0 || l.Manpower < 0 || l.Food < 0 || l.Steel < 0 || l.Oil < 0 {
			t.Fatalf("玩家 %d 资源为负: %+v", p.ID(), l)
		}
	}
}
