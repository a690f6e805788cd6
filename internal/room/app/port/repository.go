package port

import (
	"context"

	"IslandConquest/internal/room/entity"
)

// ArchiveRepository 房间摘要归档，只写。
type ArchiveRepository interface {
	Save(ctx context.Context, s *entity.RoomPersistSnapshot) error
}
