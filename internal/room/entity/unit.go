package entity

import "IslandConquest/internal/shared/gameconfig/unit"

// UnitID 稳定句柄：高 32 位 generation，低 32 位 slot。slot 复用后旧 id 失效。
type UnitID uint64

func newUnitID(slot, gen uint32) UnitID {
	return UnitID(uint64(gen)<<32 | uint64(slot))
}

func (id UnitID) slot() uint32 { return uint32(id) }
func (id UnitID) gen() uint32  { return uint32(id >> 32) }

type Unit struct {
	ID           UnitID    `json:"id"`
	Owner        PlayerID  `json:"owner"`
	Type         unit.Type `json:"type"`
	Pos          Coord     `json:"pos"`
	MoveLeft     int       `json:"moveLeft"`
	HP           int       `json:"hp"`
	SeaTransport bool      `json:"seaTransport"`
}

type unitSlot struct {
	gen   uint32
	alive bool
	unit  Unit
}

// Units 单位的 slot 数组。遍历顺序 = slot 顺序，保证结算确定性。
type Units struct {
	slots []unitSlot
	free  []uint32
	live  int
}

func newUnits() *Units {
	return &Units{}
}

func (u *Units) spawn(owner PlayerID, typ unit.Type, pos Coord, hp, move int) UnitID {
	var slot uint32
	if n := len(u.free); n > 0 {
		slot = u.free[n-1]
		u.free = u.free[:n-1]
	} else {
		slot = uint32(len(u.slots))
		// generation 从 1 开始，保证 id 永不为 0
		u.slots = append(u.slots, unitSlot{})
	}
	s := &u.slots[slot]
	s.gen++
	s.alive = true
	s.unit = Unit{
		ID:       newUnitID(slot, s.gen),
		Owner:    owner,
		Type:     typ,
		Pos:      pos,
		MoveLeft: move,
		HP:       hp,
	}
	u.live++
	return s.unit.ID
}

// Get 返回单位指针，可直接修改 MoveLeft/HP/Pos（Pos 改动需配合 Claim）。
func (u *Units) Get(id UnitID) (*Unit, bool) {
	slot := id.slot()
	if int(slot) >= len(u.slots) {
		return nil, false
	}
	s := &u.slots[slot]
	if !s.alive || s.gen != id.gen() {
		return nil, false
	}
	return &s.unit, true
}

func (u *Units) remove(id UnitID) bool {
	if _, ok := u.Get(id); !ok {
		return false
	}
	slot := id.slot()
	u.slots[slot].alive = false
	u.slots[slot].unit = Unit{}
	u.free = append(u.free, slot)
	u.live--
	return true
}

func (u *Units) Len() int { return u.live }

// Each 按 slot 顺序遍历存活单位；fn 内不要增删单位。
func (u *Units) Each(fn func(*Unit)) {
	for i := range u.slots {
		if u.slots[i].alive {
			fn(&u.slots[i].unit)
		}
	}
}

// All 存活单位的拷贝。
func (u *Units) All() []Unit {
	out := make([]Unit, 0, u.live)
	u.Each(func(x *Unit) { out = append(out, *x) })
	return out
}

// removeIf 删除满足条件的单位，返回删除数量。
func (u *Units) removeIf(pred func(*Unit) bool) int {
	var dead []UnitID
	u.Each(func(x *Unit) {
		if pred(x) {
			dead = append(dead, x.ID)
		}
	})
	for _, id := range dead {
		u.remove(id)
	}
	return len(dead)
}
