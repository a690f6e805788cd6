package unit

import "IslandConquest/internal/game/domain"

// Type 兵种标签，wire 上用原始短名。
type Type string

const (
	Infantry   Type = "inf"
	Artillery  Type = "arty"
	Tank       Type = "tank"
	Submarine  Type = "sub"
	Battleship Type = "bb"
)

// Types 固定顺序。
var Types = [...]Type{Infantry, Artillery, Tank, Submarine, Battleship}

// Damage 按对方兵种索引的伤害表。
type Damage map[Type]int

// Def 兵种定义，进程内只读。
type Def struct {
	Type    Type        `json:"type"`
	Name    string      `json:"name"`
	HP      int         `json:"hp"`
	Cost    domain.Cost `json:"cost"`
	Move    int         `json:"move"`
	Vision  int         `json:"vision"`
	Sea     bool        `json:"sea"`
	Stealth bool        `json:"stealth,omitempty"`
	Range   int         `json:"range,omitempty"`
	DmgAtk  Damage      `json:"dmgAtk"` // nil 表示不能主动攻击
	DmgDef  Damage      `json:"dmgDef"`
}

var defs = map[Type]Def{
	Infantry: {
		Type: Infantry, Name: "步兵", HP: 6,
		Cost: domain.Cost{domain.Fund: 50, domain.Manpower: 10, domain.Food: 20},
		Move: 2, Vision: 2,
		DmgAtk: Damage{Infantry: 2, Artillery: 1, Tank: 1, Battleship: 0, Submarine: 0},
		DmgDef: Damage{Infantry: 3, Artillery: 2, Tank: 2, Battleship: 1, Submarine: 1},
	},
	Artillery: {
		Type: Artillery, Name: "炮兵", HP: 7,
		Cost: domain.Cost{domain.Fund: 90, domain.Manpower: 18, domain.Steel: 24},
		Move: 1, Vision: 3, Range: 1,
		DmgAtk: Damage{Infantry: 4, Artillery: 3, Tank: 5, Battleship: 3, Submarine: 0},
		DmgDef: Damage{Infantry: 2, Artillery: 1, Tank: 2, Battleship: 1, Submarine: 1},
	},
	Tank: {
		Type: Tank, Name: "坦克", HP: 8,
		Cost: domain.Cost{domain.Fund: 150, domain.Manpower: 20, domain.Oil: 30},
		Move: 3, Vision: 4,
		DmgAtk: Damage{Infantry: 2, Artillery: 2, Tank: 2, Battleship: 1, Submarine: 0},
		DmgDef: Damage{Infantry: 2, Artillery: 2, Tank: 2, Battleship: 1, Submarine: 1},
	},
	Submarine: {
		Type: Submarine, Name: "潜艇", HP: 7,
		Cost: domain.Cost{domain.Fund: 420, domain.Manpower: 30, domain.Oil: 60, domain.Steel: 30},
		Move: 2, Vision: 3, Sea: true, Stealth: true,
		DmgDef: Damage{Infantry: 0, Artillery: 0, Tank: 0, Battleship: 1, Submarine: 1},
	},
	Battleship: {
		Type: Battleship, Name: "战舰", HP: 14,
		Cost: domain.Cost{domain.Fund: 520, domain.Manpower: 50, domain.Oil: 95},
		Move: 1, Vision: 5, Sea: true, Range: 1,
		DmgAtk: Damage{Infantry: 2, Artillery: 2, Tank: 2, Battleship: 4, Submarine: 1},
		DmgDef: Damage{Infantry: 2, Artillery: 2, Tank: 2, Battleship: 4, Submarine: 1},
	},
}

// Lookup 查兵种定义。返回值是拷贝，但 Cost/Damage 仍共享底层 map，调用方不要改。
func Lookup(t Type) (Def, bool) {
	d, ok := defs[t]
	return d, ok
}

// MustLookup 只给内部已校验过的类型用。
func MustLookup(t Type) Def {
	d, ok := defs[t]
	if !ok {
		panic("unknown unit type: " + string(t))
	}
	return d
}

// CanAttack 潜艇没有攻击表，只能防守。
func (d Def) CanAttack() bool {
	return d.DmgAtk != nil
}

// AttackDamage 本兵种攻击 target 时的伤害。
func (d Def) AttackDamage(target Type) int {
	return d.DmgAtk[target]
}

// DefenseDamage 本兵种被 attacker 攻击时的反击伤害。
func (d Def) DefenseDamage(attacker Type) int {
	return d.DmgDef[attacker]
}

// All 按固定顺序返回全部兵种，room.catalog 下发给客户端。
func All() []Def {
	out := make([]Def, 0, len(Types))
	for _, t := range Types {
		out = append(out, defs[t])
	}
	return out
}
