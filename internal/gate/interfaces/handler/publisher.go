package handler

import (
	"IslandConquest/internal/room/app/port"
	"IslandConquest/internal/shared/actor/messages"
	"IslandConquest/internal/shared/session"
)

// GameUpdateMsg 房间状态推送的消息名。
const GameUpdateMsg = "game.update"

// SessionPublisher 通过会话表把视角推给在线座位，离线直接丢弃。
type SessionPublisher struct {
	session session.Manager
}

func NewSessionPublisher(s session.Manager) *SessionPublisher {
	return &SessionPublisher{session: s}
}

func (p *SessionPublisher) Publish(roomID string, playerID int, view *messages.GameView) {
	if p == nil || p.session == nil || view == nil {
		return
	}
	conn, ok := p.session.GetConn(session.Seat{RoomID: roomID, PlayerID: playerID})
	if !ok {
		return
	}
	conn.Push(GameUpdateMsg, view)
}

var _ port.Publisher = (*SessionPublisher)(nil)
