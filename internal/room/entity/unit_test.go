package entity

import (
	"testing"

	"IslandConquest/internal/shared/gameconfig/unit"
)

func TestUnits_句柄复用后旧ID失效(t *testing.T) {
	us := newUnits()
	a := us.spawn(1, unit.Infantry, At(0, 0), 6, 2)
	b := us.spawn(2, unit.Tank, At(0, 1), 8, 3)
	if a == 0 || b == 0 || a == b {
		t.Fatalf("id 不合法 a=%d b=%d", a, b)
	}
	if !us.remove(a) {
		t.Fatalf("期望删除成功")
	}
	c := us.spawn(1, unit.Infantry, At(1, 1), 6, 2)
	if c.slot() != a.slot() {
		t.Fatalf("期望复用 slot")
	}
	if _, ok := us.Get(a); ok {
		t.Fatalf("旧 id 不应再命中")
	}
	if u, ok := us.Get(c); !ok || u.Pos != At(1, 1) {
		t.Fatalf("新 id 查不到")
	}
	if us.Len() != 2 {
		t.Fatalf("期望 2 个存活单位, got=%d", us.Len())
	}
	if us.remove(a) {
		t.Fatalf("重复删除应返回 false")
	}
}

func TestUnits_遍历按slot顺序(t *testing.T) {
	us := newUnits()
	for i := 0; i < 4; i++ {
		us.spawn(1, unit.Infantry, At(0, i), 6, 2)
	}
	n := us.removeIf(func(u *Unit) bool { return u.Pos.Col%2 == 1 })
	if n != 2 {
		t.Fatalf("期望删除 2 个, got=%d", n)
	}
	var cols []int
	us.Each(func(u *Unit) { cols = append(cols, u.Pos.Col) })
	if len(cols) != 2 || cols[0] != 0 || cols[1] != 2 {
		t.Fatalf("遍历顺序不对: %v", cols)
	}
}

func TestTerritory_位图计数(t *testing.T) {
	tr := newTerritory(130)
	tr.add(1, 0)
	tr.add(1, 64)
	tr.add(1, 129)
	tr.add(1, 129)
	if tr.Count(1) != 3 {
		t.Fatalf("count=%d", tr.Count(1))
	}
	got := tr.Indices(1)
	if len(got) != 3 || got[0] != 0 || got[1] != 64 || got[2] != 129 {
		t.Fatalf("indices=%v", got)
	}
	tr.remove(1, 64)
	tr.remove(2, 0)
	if tr.Count(1) != 2 || !tr.has(1, 0) || tr.has(1, 64) {
		t.Fatalf("删除后状态不对")
	}
	if tr.Count(0) != 0 || tr.Count(9) != 0 {
		t.Fatalf("非法座位计数应为 0")
	}
}
