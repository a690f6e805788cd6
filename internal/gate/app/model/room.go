package model

import "IslandConquest/internal/shared/gameconfig/unit"

type CreateRoomReq struct {
	Name string `json:"name"`
}

type JoinRoomReq struct {
	RoomID string `json:"room_id"`
	Name   string `json:"name"`
}

// SeatResp token 只在配置了密钥时下发。
type SeatResp struct {
	RoomID   string `json:"room_id"`
	PlayerID int    `json:"player_id"`
	Token    string `json:"token,omitempty"`
}

type ResumeReq struct {
	Token string `json:"token"`
}

// RoomReq 绑定座位后的指令都可以带 room_id 做一致性校验，可省略。
type RoomReq struct {
	RoomID string `json:"room_id"`
}

type MoveUnitReq struct {
	RoomID string `json:"room_id"`
	UnitID uint64 `json:"unit_id"`
	Row    int    `json:"r"`
	Col    int    `json:"c"`
}

type ProduceUnitReq struct {
	RoomID string `json:"room_id"`
	Row    int    `json:"r"`
	Col    int    `json:"c"`
	Type   string `json:"type"`
}

type ProduceUnitResp struct {
	UnitID uint64 `json:"unit_id"`
}

type EndTurnResp struct {
	Turn     int  `json:"turn"`
	Resolved bool `json:"resolved"`
}

type RoomSummary struct {
	RoomID  string `json:"room_id"`
	Players int    `json:"players"`
	Started bool   `json:"started"`
	Turn    int    `json:"turn"`
}

type CatalogResp struct {
	Units []unit.Def `json:"units"`
}
