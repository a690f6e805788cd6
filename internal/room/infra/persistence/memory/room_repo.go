package memory

import (
	"context"
	"sync"

	"IslandConquest/internal/room/entity"
)

// RoomRepository 进程内归档，单机开发与测试用。
type RoomRepository struct {
	mu    sync.RWMutex
	rooms map[string]entity.RoomPersistSnapshot
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{rooms: make(map[string]entity.RoomPersistSnapshot)}
}

// Save 旧版本不会覆盖新版本。
func (r *RoomRepository) Save(ctx context.Context, s *entity.RoomPersistSnapshot) error {
	if s == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	cp := *s
	cp.Players = append([]entity.PlayerSummary(nil), s.Players...)

	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.rooms[s.RoomID]; ok && old.Version > s.Version {
		return nil
	}
	r.rooms[s.RoomID] = cp
	return nil
}

func (r *RoomRepository) Get(roomID string) (entity.RoomPersistSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.rooms[roomID]
	return s, ok
}

func (r *RoomRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
