package interfaces

import (
	nethttp "net/http"

	"IslandConquest/internal/gate/app"
	"IslandConquest/internal/gate/interfaces/handler"
	"IslandConquest/internal/gate/interfaces/handler/http"
	ws2 "IslandConquest/internal/gate/interfaces/handler/ws"
	"IslandConquest/internal/shared/session"
	transporthttp "IslandConquest/internal/shared/transport/http"
	"IslandConquest/internal/shared/transport/ws"
	"IslandConquest/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

type Module struct {
	wsHandler   *ws2.WsHandler
	httpHandler *http.HttpHandler
}

func New(s session.Manager, rooms app.RoomRuntime, wsServer nethttp.Handler, l logx.Logger) *Module {
	gate := handler.NewGate(s, rooms, l)
	return &Module{
		wsHandler:   ws2.NewWsHandler(gate),
		httpHandler: http.NewHttpHandler(gate, wsServer),
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
