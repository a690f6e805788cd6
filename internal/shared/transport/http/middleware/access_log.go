package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"

	"IslandConquest/internal/shared/transport"
	"IslandConquest/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

// codeSniffer 留一份响应体用来读业务码。
type codeSniffer struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *codeSniffer) Write(data []byte) (int, error) {
	w.buf.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *codeSniffer) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// AccessLog 每个请求一行访问日志；业务码取响应体的 code 字段，取不到时按 HTTP 状态推断。
// websocket 升级请求只记握手结果，不截取后续帧。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx := transport.NewContextWithParent(c.Request.Context(), c.Request.Method+" "+route)
		c.Request = c.Request.WithContext(ctx)
		if id := c.Param("id"); id != "" {
			transport.SetSeat(ctx, id, 0)
		}

		var sniff *codeSniffer
		if !isUpgrade(c.Request) {
			sniff = &codeSniffer{ResponseWriter: c.Writer}
			c.Writer = sniff
		}

		c.Next()

		code := transport.OK
		if sniff != nil {
			if v, ok := parseBizCode(sniff.buf.Bytes()); ok {
				code = v
			} else if c.Writer.Status() >= http.StatusBadRequest {
				code = transport.SystemError
			}
		} else if c.Writer.Status() >= http.StatusBadRequest {
			code = transport.SystemError
		}
		transport.SetBizCode(ctx, transport.BizCode(code))
		transport.WriteAccessLog(ctx, log)
	}
}

func isUpgrade(r *http.Request) bool {
	return r.Header.Get("Upgrade") != ""
}

func parseBizCode(body []byte) (int, bool) {
	if len(body) == 0 {
		return 0, false
	}
	var payload struct {
		Code *int `json:"code"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Code == nil {
		return 0, false
	}
	return *payload.Code, true
}
