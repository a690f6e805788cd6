package gormdb

import (
	"context"
	"errors"

	"IslandConquest/internal/room/entity"
	"IslandConquest/internal/room/infra/persistence/model"
	"IslandConquest/modules/kit/errx"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const OpSave = "repo.room.Save"

// RoomRepository mysql、postgres 与 sqlite 共用。
type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// AutoMigrate 建表，启动时调用一次。
func (r *RoomRepository) AutoMigrate() error {
	if r == nil || r.db == nil {
		return errors.New("gorm db is nil")
	}
	return r.db.AutoMigrate(&model.RoomArchive{})
}

func (r *RoomRepository) Save(ctx context.Context, s *entity.RoomPersistSnapshot) error {
	if s == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return errx.ErrUnavailable.WithCause(errors.New("gorm db is nil")).WithData("op", OpSave)
	}
	m := model.SnapshotToArchive(s)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"version", "turn", "started", "units", "players", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return errx.ErrInternal.WithCause(err).WithDataMap(map[string]any{"op": OpSave, "room_id": s.RoomID})
	}
	return nil
}

// Load 没有记录时返回 nil, nil。
func (r *RoomRepository) Load(ctx context.Context, roomID string) (*model.RoomArchive, error) {
	var m model.RoomArchive
	err := r.db.WithContext(ctx).Where("room_id = ?", roomID).First(&m).Error
	switch {
	case err == nil:
		return &m, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, errx.ErrInternal.WithCause(err).WithData("room_id", roomID)
	}
}
