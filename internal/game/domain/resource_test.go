package domain

import "testing"

func TestLedger_Spend_资源不足时账本不变(t *testing.T) {
	l := Ledger{Fund: 40, Manpower: 10, Food: 20}
	cost := Cost{Fund: 50, Manpower: 10, Food: 20}

	if err := l.Spend(cost); err == nil {
		t.Fatalf("期望资源不足返回错误")
	}
	if l != (Ledger{Fund: 40, Manpower: 10, Food: 20}) {
		t.Fatalf("期望失败时账本不变, got=%+v", l)
	}
}

func TestLedger_Spend_成功扣减所有项(t *testing.T) {
	l := StartingLedger()
	if err := l.Spend(Cost{Fund: 420, Manpower: 30, Oil: 60, Steel: 30}); err != nil {
		t.Fatalf("Spend err=%v", err)
	}
	want := Ledger{Fund: 480, Manpower: 190, Food: 240, Steel: 110, Oil: 40}
	if l != want {
		t.Fatalf("got=%+v want=%+v", l, want)
	}
}

func TestLedger_CanAfford_未知资源视为买不起(t *testing.T) {
	l := StartingLedger()
	if l.CanAfford(Cost{"gold": 1}) {
		t.Fatalf("期望未知资源返回 false")
	}
}

func TestLedger_Add_忽略负数(t *testing.T) {
	l := Ledger{}
	l.Add(Manpower, 5)
	l.Add(Manpower, -100)
	if l.Manpower != 5 {
		t.Fatalf("期望 man=5, got=%d", l.Manpower)
	}
}
