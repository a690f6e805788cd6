package service

import "math/rand/v2"

// Rand 房间内所有随机行为的来源。*rand.Rand 直接满足。
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// NewRand 固定种子得到可复现的随机序列。
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
