package app

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{
		Code:    c,
		Message: m,
	}
}

var (
	ReasonRoomNotFound = NewReason("ROOM_NOT_FOUND", "房间不存在")
	ReasonRoomFull     = NewReason("ROOM_FULL", "房间已满")
	ReasonRoomStarted  = NewReason("ROOM_STARTED", "房间已开局")
	ReasonNotStarted   = NewReason("NOT_STARTED", "房间尚未开局")
	ReasonNotInRoom    = NewReason("NOT_IN_ROOM", "不在该房间内")
	ReasonNotHost      = NewReason("NOT_HOST", "只有房主可以开局")
)

var (
	// 指令校验失败，原样回给发起方。
	ReasonUnitNotFound          = NewReason("UNIT_NOT_FOUND", "单位不存在")
	ReasonNotUnitOwner          = NewReason("NOT_UNIT_OWNER", "不能指挥他人的单位")
	ReasonNoMovesLeft           = NewReason("NO_MOVES_LEFT", "本回合行动力已用完")
	ReasonInsufficientResources = NewReason("INSUFFICIENT_RESOURCES", "资源不足")
	ReasonUnknownUnitType       = NewReason("UNKNOWN_UNIT_TYPE", "未知兵种")
	ReasonOutOfBounds           = NewReason("OUT_OF_BOUNDS", "坐标超出地图")
)

var (
	ReasonMapGeneration = NewReason("MAP_GENERATION", "地图生成失败")
	ReasonRoomInternal  = NewReason("ROOM_INTERNAL", "房间内部错误")
)

var reasons = map[string]Reason{}

func init() {
	for _, r := range []Reason{
		ReasonRoomNotFound, ReasonRoomFull, ReasonRoomStarted, ReasonNotStarted, ReasonNotInRoom, ReasonNotHost,
		ReasonUnitNotFound, ReasonNotUnitOwner, ReasonNoMovesLeft, ReasonInsufficientResources,
		ReasonUnknownUnitType, ReasonOutOfBounds,
		ReasonMapGeneration, ReasonRoomInternal,
	} {
		reasons[r.Code] = r
	}
}

// LookupReason 按 reason code 取回预定义的 Reason。
func LookupReason(code string) (Reason, bool) {
	r, ok := reasons[code]
	return r, ok
}
