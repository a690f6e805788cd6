package model

import (
	"IslandConquest/internal/game/domain"
	"IslandConquest/internal/room/entity"

	"gorm.io/datatypes"
)

// RoomDoc mongodb 文档
type RoomDoc struct {
	RoomID    string          `bson:"_id"`
	Version   uint64          `bson:"version"`
	Turn      int             `bson:"turn"`
	Started   bool            `bson:"started"`
	Units     int             `bson:"units"`
	Players   []RoomPlayerDoc `bson:"players"`
	CreatedAt int64           `bson:"created_at"`
	UpdatedAt int64           `bson:"updated_at"`
}

type RoomPlayerDoc struct {
	ID         int           `bson:"id" json:"id"`
	Name       string        `bson:"name" json:"name"`
	Resources  domain.Ledger `bson:"resources" json:"resources"`
	Territory  int           `bson:"territory" json:"territory"`
	Land       int           `bson:"land" json:"land"`
	Units      int           `bson:"units" json:"units"`
	Eliminated bool          `bson:"eliminated" json:"eliminated"`
}

// RoomArchive mysql/postgres/sqlite 表，players 列按方言存 JSON 或 JSONB
type RoomArchive struct {
	RoomID    string                             `gorm:"column:room_id;type:varchar(16);comment:房间号;primaryKey;not null;" json:"room_id"`
	Version   uint64                             `gorm:"column:version;type:bigint UNSIGNED;comment:快照版本;not null;default:0;" json:"version"`
	Turn      int                                `gorm:"column:turn;type:int;comment:当前回合;not null;default:1;" json:"turn"`
	Started   bool                               `gorm:"column:started;comment:是否已开局;not null;default:false;" json:"started"`
	Units     int                                `gorm:"column:units;type:int;comment:存活单位数;not null;default:0;" json:"units"`
	Players   datatypes.JSONSlice[RoomPlayerDoc] `gorm:"column:players;comment:玩家摘要;" json:"players"`
	CreatedAt int64                              `gorm:"column:created_at;type:bigint;comment:创建时间ms;not null;" json:"created_at"`
	UpdatedAt int64                              `gorm:"column:updated_at;type:bigint;comment:更新时间ms;not null;" json:"updated_at"`
}

func (m *RoomArchive) TableName() string {
	return "room_archive"
}

func playerDocs(in []entity.PlayerSummary) []RoomPlayerDoc {
	out := make([]RoomPlayerDoc, 0, len(in))
	for _, p := range in {
		out = append(out, RoomPlayerDoc{
			ID:         int(p.ID),
			Name:       p.Name,
			Resources:  p.Resources,
			Territory:  p.Territory,
			Land:       p.Land,
			Units:      p.Units,
			Eliminated: p.Eliminated,
		})
	}
	return out
}

func SnapshotToDoc(s *entity.RoomPersistSnapshot) RoomDoc {
	return RoomDoc{
		RoomID:    s.RoomID,
		Version:   s.Version,
		Turn:      s.Turn,
		Started:   s.Started,
		Units:     s.Units,
		Players:   playerDocs(s.Players),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func SnapshotToArchive(s *entity.RoomPersistSnapshot) *RoomArchive {
	return &RoomArchive{
		RoomID:    s.RoomID,
		Version:   s.Version,
		Turn:      s.Turn,
		Started:   s.Started,
		Units:     s.Units,
		Players:   datatypes.NewJSONSlice(playerDocs(s.Players)),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
