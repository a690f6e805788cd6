package ws

import (
	"net/http"

	"IslandConquest/modules/kit/logx"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server 把 HTTP 请求升级为 ws 连接，每条连接一对读写协程。
type Server struct {
	router     *Router
	needSecret bool
	upgrader   websocket.Upgrader
	log        logx.Logger
}

// NewServer needSecret 为 true 时走握手 + AES + zlib 帧，否则是明文 json。
func NewServer(r *Router, needSecret bool, l logx.Logger) *Server {
	if l == nil {
		l = logx.Nop()
	}
	return &Server{
		router:     r,
		needSecret: needSecret,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// 浏览器客户端来源不限
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: l,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.String("addr", r.RemoteAddr), zap.Error(err))
		return
	}
	conn.SetReadLimit(maxFrameBytes)
	s.log.Debug("websocket connected", zap.String("addr", conn.RemoteAddr().String()), zap.Bool("secret", s.needSecret))

	c := NewWsServer(conn, s.needSecret, s.log)
	c.Router(s.router)
	if s.needSecret {
		c.handshake()
	}
	c.Run()
}
