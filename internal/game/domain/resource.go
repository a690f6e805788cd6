package domain

import "fmt"

// Resource 资源种类，wire 上用原始短名。
type Resource string

const (
	Fund     Resource = "fund"
	Manpower Resource = "man"
	Food     Resource = "food"
	Steel    Resource = "steel"
	Oil      Resource = "oil"
)

// Resources 固定顺序，遍历 Cost/Ledger 时保证确定性。
var Resources = [...]Resource{Fund, Manpower, Food, Steel, Oil}

// Cost 兵种造价，只列出需要的资源。
type Cost map[Resource]int

// Ledger 玩家资源账本，所有字段非负；扣减只能走 Spend。
type Ledger struct {
	Fund     int `json:"fund" bson:"fund"`
	Manpower int `json:"man" bson:"man"`
	Food     int `json:"food" bson:"food"`
	Steel    int `json:"steel" bson:"steel"`
	Oil      int `json:"oil" bson:"oil"`
}

// StartingLedger 开局资源。
func StartingLedger() Ledger {
	return Ledger{Fund: 900, Manpower: 220, Food: 240, Steel: 140, Oil: 100}
}

func (l *Ledger) slot(r Resource) *int {
	switch r {
	case Fund:
		return &l.Fund
	case Manpower:
		return &l.Manpower
	case Food:
		return &l.Food
	case Steel:
		return &l.Steel
	case Oil:
		return &l.Oil
	default:
		return nil
	}
}

func (l Ledger) Get(r Resource) int {
	if p := l.slot(r); p != nil {
		return *p
	}
	return 0
}

// Add 收入入账；负数与未知资源忽略。
func (l *Ledger) Add(r Resource, n int) {
	if n <= 0 {
		return
	}
	if p := l.slot(r); p != nil {
		*p += n
	}
}

// CanAfford 所有资源一起检查，任何一项不够都返回 false。
func (l Ledger) CanAfford(cost Cost) bool {
	for _, r := range Resources {
		need, ok := cost[r]
		if !ok {
			continue
		}
		if l.Get(r) < need {
			return false
		}
	}
	for r := range cost {
		if l.slot(r) == nil {
			return false
		}
	}
	return true
}

// Spend 先整体校验再扣减，失败时账本不变。
func (l *Ledger) Spend(cost Cost) error {
	if !l.CanAfford(cost) {
		return fmt.Errorf("ledger cannot afford %v", cost)
	}
	for _, r := range Resources {
		if need, ok := cost[r]; ok {
			*l.slot(r) -= need
		}
	}
	return nil
}
