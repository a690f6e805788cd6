package app

import (
	"context"

	roomactor "IslandConquest/internal/room/actor"
	"IslandConquest/internal/shared/actor/messages"
)

// RoomRuntime 房间 actor 运行时，*actor.Runtime 实现它。
type RoomRuntime interface {
	CreateRoom(ctx context.Context, name string) (roomactor.Seat, error)
	JoinRoom(ctx context.Context, roomID, name string) (roomactor.Seat, error)
	StartGame(ctx context.Context, roomID string, playerID int) error
	MoveUnit(ctx context.Context, roomID string, playerID int, unitID uint64, row, col int) error
	ProduceUnit(ctx context.Context, roomID string, playerID int, row, col int, unitType string) (uint64, error)
	EndTurn(ctx context.Context, roomID string, playerID int) (*messages.RHEndTurn, error)
	View(ctx context.Context, roomID string, playerID int) (*messages.GameView, error)
	ListRooms(ctx context.Context) ([]messages.RoomInfo, error)
	CloseRoom(ctx context.Context, roomID string) error
}

var _ RoomRuntime = (*roomactor.Runtime)(nil)
