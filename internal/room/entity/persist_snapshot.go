package entity

import "IslandConquest/internal/game/domain"

type PlayerSummary struct {
	ID         PlayerID      `json:"id" bson:"id"`
	Name       string        `json:"name" bson:"name"`
	Resources  domain.Ledger `json:"resources" bson:"resources"`
	Territory  int           `json:"territory" bson:"territory"`
	Land       int           `json:"land" bson:"land"`
	Units      int           `json:"units" bson:"units"`
	Eliminated bool          `json:"eliminated" bson:"eliminated"`
}

// RoomPersistSnapshot 归档用的房间摘要，只写不读。
type RoomPersistSnapshot struct {
	Version   uint64          `json:"version" bson:"version"`
	RoomID    string          `json:"room_id" bson:"_id"`
	Turn      int             `json:"turn" bson:"turn"`
	Started   bool            `json:"started" bson:"started"`
	Units     int             `json:"units" bson:"units"`
	Players   []PlayerSummary `json:"players" bson:"players"`
	CreatedAt int64           `json:"created_at" bson:"created_at"`
	UpdatedAt int64           `json:"updated_at" bson:"updated_at"`
}

// BuildPersistSnapshot 没有脏数据时返回 false。
func (r *Room) BuildPersistSnapshot(version uint64, updatedAt int64) (*RoomPersistSnapshot, bool) {
	if !r.Dirty() {
		return nil, false
	}
	perOwner := map[PlayerID]int{}
	r.units.Each(func(u *Unit) { perOwner[u.Owner]++ })

	s := &RoomPersistSnapshot{
		Version:   version,
		RoomID:    r.id,
		Turn:      r.turn,
		Started:   r.started,
		Units:     r.units.Len(),
		Players:   make([]PlayerSummary, 0, len(r.players)),
		CreatedAt: r.createdAt.UnixMilli(),
		UpdatedAt: updatedAt,
	}
	for _, p := range r.players {
		land := r.LandCount(p.id)
		s.Players = append(s.Players, PlayerSummary{
			ID:         p.id,
			Name:       p.name,
			Resources:  p.Resources,
			Territory:  r.territory.Count(p.id),
			Land:       land,
			Units:      perOwner[p.id],
			Eliminated: r.started && land == 0,
		})
	}
	return s, true
}
