package unit

import (
	"IslandConquest/internal/game/domain"
	"testing"
)

func TestLookup_五种兵种齐全(t *testing.T) {
	for _, typ := range Types {
		d, ok := Lookup(typ)
		if !ok {
			t.Fatalf("期望能查到 %s", typ)
		}
		if d.HP <= 0 || d.Move <= 0 {
			t.Fatalf("期望 hp/move 为正, got=%+v", d)
		}
	}
	if _, ok := Lookup("cav"); ok {
		t.Fatalf("期望未知兵种查不到")
	}
}

func TestInfantry_造价与血量(t *testing.T) {
	d := MustLookup(Infantry)
	if d.HP != 6 {
		t.Fatalf("期望步兵 hp=6, got=%d", d.HP)
	}
	want := domain.Cost{domain.Fund: 50, domain.Manpower: 10, domain.Food: 20}
	if len(d.Cost) != len(want) {
		t.Fatalf("got=%v want=%v", d.Cost, want)
	}
	for r, n := range want {
		if d.Cost[r] != n {
			t.Fatalf("got=%v want=%v", d.Cost, want)
		}
	}
}

func TestSubmarine_只能防守(t *testing.T) {
	d := MustLookup(Submarine)
	if d.CanAttack() {
		t.Fatalf("期望潜艇不能主动攻击")
	}
	if !d.Sea || !d.Stealth {
		t.Fatalf("期望潜艇是海军且隐身")
	}
	if d.DefenseDamage(Battleship) != 1 {
		t.Fatalf("期望潜艇对战舰反击 1")
	}
}

func TestDamage_攻防不对称(t *testing.T) {
	art := MustLookup(Artillery)
	if art.AttackDamage(Tank) == art.DefenseDamage(Tank) {
		t.Fatalf("期望炮兵对坦克攻防伤害不同")
	}
}
