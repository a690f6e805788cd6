package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// 种子布局: 毫秒时间戳(41) | 节点(10) | 序号(12)，再经 splitmix64 打散。
const (
	seedEpochMilli int64 = 1735689600000 // 2025-01-01 UTC

	seedNodeBits = 10
	seedSeqBits  = 12
	seedMaxNode  = 1<<seedNodeBits - 1
	seedMaxSeq   = 1<<seedSeqBits - 1
)

// SeedGen 为每个新房间发一个互不相同的随机种子。
type SeedGen struct {
	mu   sync.Mutex
	node int64
	last int64
	seq  int64
	now  func() int64
}

func NewSeedGen(node int64) (*SeedGen, error) {
	if node < 0 || node > seedMaxNode {
		return nil, fmt.Errorf("seed node out of range: %d", node)
	}
	return &SeedGen{node: node, now: func() int64 { return time.Now().UnixMilli() }}, nil
}

// Raw 单调递增的原始 id。
func (g *SeedGen) Raw() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	ts := g.now()
	if ts < g.last {
		ts = g.last
	}
	if ts == g.last {
		g.seq = (g.seq + 1) & seedMaxSeq
		if g.seq == 0 {
			// 同一毫秒序号用尽，借用下一毫秒
			ts++
		}
	} else {
		g.seq = 0
	}
	g.last = ts
	return (ts-seedEpochMilli)<<(seedNodeBits+seedSeqBits) | g.node<<seedSeqBits | g.seq
}

// Next 打散后的种子。
func (g *SeedGen) Next() uint64 {
	return splitmix64(uint64(g.Raw()))
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

var (
	seedOnce sync.Once
	seedGen  *SeedGen
	seedErr  error
)

// RoomSeed 进程级种子，节点号取 ROOM_SEED_NODE，默认 1。
func RoomSeed() (uint64, error) {
	seedOnce.Do(func() {
		node := int64(1)
		if raw := strings.TrimSpace(os.Getenv("ROOM_SEED_NODE")); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				seedErr = fmt.Errorf("invalid ROOM_SEED_NODE: %w", err)
				return
			}
			node = n
		}
		seedGen, seedErr = NewSeedGen(node)
	})
	if seedErr != nil {
		return 0, seedErr
	}
	return seedGen.Next(), nil
}
