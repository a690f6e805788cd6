package dc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"IslandConquest/internal/room/entity"
	"IslandConquest/internal/room/infra/persistence/memory"
)

// flakyRepo 前 failures 次 Save 失败，之后转存到内存仓储。
type flakyRepo struct {
	mu       sync.Mutex
	failures int
	calls    int
	inner    *memory.RoomRepository
}

func (r *flakyRepo) Save(ctx context.Context, s *entity.RoomPersistSnapshot) error {
	r.mu.Lock()
	r.calls++
	fail := r.calls <= r.failures
	r.mu.Unlock()
	if fail {
		return errors.New("archive down")
	}
	return r.inner.Save(ctx, s)
}

func newRoom(t *testing.T) *entity.Room {
	t.Helper()
	room := entity.NewRoom("042QX", 4, 4, time.Unix(100, 0))
	if _, err := room.AddPlayer("ann"); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	return room
}

func TestRoomDC_未绑定房间(t *testing.T) {
	d := NewRoomDC(memory.NewRoomRepository(), 0)
	defer d.Close(context.Background())
	if err := d.Flush(context.Background()); !errors.Is(err, ErrNoRoom) {
		t.Fatalf("期望 ErrNoRoom, got=%v", err)
	}
	if d.FlushEvery() != defaultFlushEvery {
		t.Fatalf("默认间隔不对: %v", d.FlushEvery())
	}
}

func TestRoomDC_Close写出最后一份快照(t *testing.T) {
	repo := memory.NewRoomRepository()
	d := NewRoomDC(repo, time.Second)
	room := newRoom(t)
	d.Attach(room)

	if err := d.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if d.IsDirty() {
		t.Fatalf("flush 后应清除脏标记")
	}
	if _, err := room.AddPlayer("bob"); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	s, ok := repo.Get("042QX")
	if !ok {
		t.Fatalf("期望已归档")
	}
	if s.Version != 2 || len(s.Players) != 2 || s.CreatedAt != 100_000 {
		t.Fatalf("快照不对: %+v", s)
	}
	// 关闭后不再接收
	room.Touch()
	_ = d.Flush(context.Background())
	if got, _ := repo.Get("042QX"); got.Version != 2 {
		t.Fatalf("关闭后不应再写入, version=%d", got.Version)
	}
}

func TestRoomDC_保存失败重试(t *testing.T) {
	repo := &flakyRepo{failures: 2, inner: memory.NewRoomRepository()}
	d := NewRoomDC(repo, time.Second)
	d.Attach(newRoom(t))
	if err := d.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for repo.inner.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("重试后仍未写入, calls=%d", repo.calls)
		}
		time.Sleep(20 * time.Millisecond)
	}
	_ = d.Close(context.Background())
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.calls != 3 {
		t.Fatalf("期望 3 次 Save, got=%d", repo.calls)
	}
}

func TestRoomDC_无变化不入队(t *testing.T) {
	repo := &flakyRepo{inner: memory.NewRoomRepository()}
	d := NewRoomDC(repo, time.Second)
	room := newRoom(t)
	room.ClearDirty()
	d.Attach(room)
	if err := d.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	_ = d.Close(context.Background())
	if repo.calls != 0 {
		t.Fatalf("无脏数据不应写, calls=%d", repo.calls)
	}
}
