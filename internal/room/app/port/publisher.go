package port

import "IslandConquest/internal/shared/actor/messages"

// Publisher 向某个座位推送状态。实现必须非阻塞，推不出去就丢弃。
type Publisher interface {
	Publish(roomID string, playerID int, view *messages.GameView)
}
