package dc

import (
	"context"
	"errors"
	"sync"
	"time"

	"IslandConquest/internal/room/app/port"
	"IslandConquest/internal/room/entity"
	"IslandConquest/internal/shared/logs"

	"go.uber.org/zap"
)

const (
	defaultFlushEvery = 3000 * time.Millisecond
	saveTimeout       = 5 * time.Second
	retryBackoff      = 200 * time.Millisecond
)

var ErrNoRoom = errors.New("room dc has no entity attached")

// RoomDC 房间摘要的 write-behind：actor 线程生成带版本的快照，写协程只保留最新一份。
type RoomDC struct {
	repo       port.ArchiveRepository
	entity     *entity.Room
	flushEvery time.Duration
	now        func() time.Time

	mu      sync.Mutex
	pending *entity.RoomPersistSnapshot
	version uint64
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewRoomDC(repo port.ArchiveRepository, flushEvery time.Duration) *RoomDC {
	if flushEvery <= 0 {
		flushEvery = defaultFlushEvery
	}
	d := &RoomDC{
		repo:       repo,
		flushEvery: flushEvery,
		now:        time.Now,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

// Attach 绑定房间实体，actor 启动时调用一次。
func (d *RoomDC) Attach(room *entity.Room) {
	d.entity = room
}

// Flush 只能在 actor 线程调用。
func (d *RoomDC) Flush(ctx context.Context) error {
	if d.entity == nil {
		return ErrNoRoom
	}
	if !d.IsDirty() || d.repo == nil {
		return nil
	}
	s, ok := d.buildNextSnapshot()
	if !ok {
		return nil
	}
	d.enqueueLatest(s)
	return nil
}

func (d *RoomDC) IsDirty() bool {
	if d.entity == nil {
		return false
	}
	return d.entity.Dirty()
}

func (d *RoomDC) FlushEvery() time.Duration {
	return d.flushEvery
}

// Close 先刷最后一份快照，再等写协程退出。
func (d *RoomDC) Close(ctx context.Context) error {
	if d.entity != nil {
		_ = d.Flush(ctx)
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *RoomDC) buildNextSnapshot() (*entity.RoomPersistSnapshot, bool) {
	d.mu.Lock()
	d.version++
	version := d.version
	d.mu.Unlock()

	s, ok := d.entity.BuildPersistSnapshot(version, d.now().UnixMilli())
	if !ok {
		return nil, false
	}
	d.entity.ClearDirty()
	return s, true
}

func (d *RoomDC) enqueueLatest(s *entity.RoomPersistSnapshot) {
	if s == nil {
		return
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *RoomDC) popPending() *entity.RoomPersistSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

func (d *RoomDC) requeueOnError(s *entity.RoomPersistSnapshot) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	return true
}

func (d *RoomDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending()
		case <-d.stop:
			d.consumePending()
			return
		}
	}
}

func (d *RoomDC) consumePending() {
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := d.repo.Save(ctx, s)
		cancel()
		if err == nil {
			continue
		}
		logs.Warn("room archive save failed",
			zap.String("room_id", s.RoomID),
			zap.Uint64("version", s.Version),
			zap.Error(err))
		// 关闭后不再重试，最后一份快照丢弃。
		if !d.requeueOnError(s) {
			return
		}
		time.Sleep(retryBackoff)
	}
}
