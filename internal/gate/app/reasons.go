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
	// actor runtime 技术错误 reason。
	ReasonUpstreamUnavailable = NewReason("UPSTREAM_UNAVAILABLE", "房间服务不可用")
	ReasonUpstreamTimeout     = NewReason("UPSTREAM_TIMEOUT", "房间服务超时")
	ReasonUpstreamInternal    = NewReason("UPSTREAM_INTERNAL", "房间服务内部错误")
	ReasonUpstreamBadResponse = NewReason("UPSTREAM_BAD_RESPONSE", "房间服务返回异常")
)

var (
	ReasonSeatTokenInvalid  = NewReason("SEAT_TOKEN_INVALID", "座位令牌无效")
	ReasonResumeUnavailable = NewReason("RESUME_UNAVAILABLE", "未配置令牌密钥，无法重连")
	ReasonNoSeat            = NewReason("NO_SEAT", "请先创建或加入房间")
)
