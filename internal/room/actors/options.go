package actors

import (
	"time"

	"IslandConquest/internal/room/app/port"
	"IslandConquest/internal/room/service"
)

const (
	DefaultTurnTimeout = 180 * time.Second
	DefaultIdleTimeout = 30 * time.Minute
)

// Options 所有房间共享的依赖与规则。
type Options struct {
	Service     *service.RoomService
	Archive     port.ArchiveRepository
	Publisher   port.Publisher
	Metrics     *Metrics
	TurnTimeout time.Duration
	IdleTimeout time.Duration
	FlushEvery  time.Duration
	Now         func() time.Time
	// Seed 为每个房间提供随机种子。
	Seed func() uint64
	// NewRoomID 生成候选房号，冲突时 manager 会重试。
	NewRoomID func() string
}

func (o Options) withDefaults() Options {
	if o.Service == nil {
		o.Service = service.NewRoomService(service.Rules{})
	}
	if o.TurnTimeout <= 0 {
		o.TurnTimeout = DefaultTurnTimeout
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Seed == nil {
		o.Seed = func() uint64 { return uint64(time.Now().UnixNano()) }
	}
	if o.Metrics == nil {
		o.Metrics = NewMetrics()
	}
	return o
}
