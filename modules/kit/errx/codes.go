package errx

// 只放跨模块共用的系统类错误码；房间、兵种等业务码在各自的包里定义。
const (
	// CodeInternal 兜底的内部错误。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 依赖不可用：actor runtime 已停止、归档库不可达等。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout actor ask 或下游调用超时。
	CodeTimeout Code = "TIMEOUT"
)

var (
	ErrInternal    = NewSys(CodeInternal, "服务器内部错误")
	ErrUnavailable = NewSys(CodeUnavailable, "服务不可用")
	ErrTimeout     = NewSys(CodeTimeout, "请求超时")
)
