package entity

import "errors"

var (
	ErrRoomFull      = errors.New("room full")
	ErrRoomStarted   = errors.New("room already started")
	ErrOutOfBounds   = errors.New("coordinate out of bounds")
	ErrUnitNotFound  = errors.New("unit not found")
	ErrPlayerMissing = errors.New("player not in room")
)
