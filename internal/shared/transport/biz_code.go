package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 客户端可见的业务码。0 成功；1..499 业务拒绝；>=500 系统错误。
const (
	OK             = 0
	InvalidParam   = 1
	SessionInvalid = 2
	TokenInvalid   = 3

	RoomNotFound = 101
	RoomFull     = 102
	RoomStarted  = 103
	NotStarted   = 104
	NotInRoom    = 105
	NotHost      = 106

	UnitNotFound          = 201
	NotUnitOwner          = 202
	NoMovesLeft           = 203
	InsufficientResources = 204
	UnknownUnitType       = 205
	OutOfBounds           = 206

	SystemError         = 500
	UpstreamInternal    = 502
	UpstreamUnavailable = 503
	UpstreamTimeout     = 504
)
