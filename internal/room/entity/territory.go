package entity

import "math/bits"

// Territory 玩家 -> 格子集合 的倒排索引，每个玩家一张位图。
//
// 不变量：一个格子最多在一张位图里，且与 Tile.owner 一致。
// 只能经由 Room.Claim / Room.Release 修改。
type Territory struct {
	size   int
	sets   [MaxPlayers + 1][]uint64
	counts [MaxPlayers + 1]int
}

func newTerritory(size int) *Territory {
	t := &Territory{size: size}
	words := (size + 63) / 64
	for i := 1; i <= MaxPlayers; i++ {
		t.sets[i] = make([]uint64, words)
	}
	return t
}

func (t *Territory) has(pid PlayerID, idx int) bool {
	if !pid.Valid() || idx < 0 || idx >= t.size {
		return false
	}
	return t.sets[pid][idx/64]&(1<<(uint(idx)%64)) != 0
}

func (t *Territory) add(pid PlayerID, idx int) {
	if t.has(pid, idx) {
		return
	}
	t.sets[pid][idx/64] |= 1 << (uint(idx) % 64)
	t.counts[pid]++
}

func (t *Territory) remove(pid PlayerID, idx int) {
	if !t.has(pid, idx) {
		return
	}
	t.sets[pid][idx/64] &^= 1 << (uint(idx) % 64)
	t.counts[pid]--
}

// Count 玩家领地格数（含海洋格）。
func (t *Territory) Count(pid PlayerID) int {
	if !pid.Valid() {
		return 0
	}
	return t.counts[pid]
}

// Each 按下标升序遍历玩家领地。
func (t *Territory) Each(pid PlayerID, fn func(idx int)) {
	if !pid.Valid() {
		return
	}
	for w, word := range t.sets[pid] {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			fn(w*64 + b)
			word &= word - 1
		}
	}
}

// Indices 玩家领地下标，升序。
func (t *Territory) Indices(pid PlayerID) []int {
	out := make([]int, 0, t.Count(pid))
	t.Each(pid, func(idx int) { out = append(out, idx) })
	return out
}
