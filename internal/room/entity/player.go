package entity

import "IslandConquest/internal/game/domain"

// Player 加入后一直保留，被消灭也不移除。
type Player struct {
	id        PlayerID
	name      string
	Resources domain.Ledger
	StartPos  *Coord
}

func newPlayer(id PlayerID, name string) *Player {
	return &Player{
		id:        id,
		name:      name,
		Resources: domain.StartingLedger(),
	}
}

func (p *Player) ID() PlayerID { return p.id }
func (p *Player) Name() string { return p.name }
