package ws

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"IslandConquest/internal/shared/security"
	"IslandConquest/internal/shared/utils"
	"IslandConquest/modules/kit/logx"

	"github.com/go-think/openssl"
	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait   = 5 * time.Second
	keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type WsServer struct {
	conn       *websocket.Conn
	router     *Router
	outChan    chan *WsMsgResp
	needSecret bool
	property   map[string]any
	sync.RWMutex
	done      chan struct{}
	closeOnce sync.Once
	// gorilla 连接同一时刻只允许一个写者
	wmu sync.Mutex
	log logx.Logger
}

func NewWsServer(wsConn *websocket.Conn, needSecret bool, l logx.Logger) *WsServer {
	return &WsServer{
		conn:       wsConn,
		outChan:    make(chan *WsMsgResp, outQueueSize),
		needSecret: needSecret,
		property:   make(map[string]any),
		done:       make(chan struct{}),
		log:        l,
	}
}

func (s *WsServer) Router(router *Router) {
	s.router = router
}

func (s *WsServer) SetProperty(key string, value any) {
	s.Lock()
	defer s.Unlock()
	s.property[key] = value
}

func (s *WsServer) GetProperty(key string) any {
	s.RLock()
	defer s.RUnlock()
	return s.property[key]
}

func (s *WsServer) RemoveProperty(key string) {
	s.Lock()
	defer s.Unlock()
	delete(s.property, key)
}

func (s *WsServer) Addr() string {
	return s.conn.RemoteAddr().String()
}

// Push 服务端主动推送，seq 固定为 0。
func (s *WsServer) Push(name string, data any) bool {
	return s.enqueue(&WsMsgResp{Body: &RespBody{Name: name, Msg: data}})
}

func (s *WsServer) enqueue(rsp *WsMsgResp) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.outChan <- rsp:
		return true
	default:
		s.log.Warn("ws_server out queue full, drop msg",
			zap.String("addr", s.Addr()), zap.String("name", rsp.Body.Name))
		return false
	}
}

func (s *WsServer) Run() {
	go s.readMsgLoop()
	go s.writeMsgLoop()
}

func (s *WsServer) readMsgLoop() {
	defer func() {
		if err := recover(); err != nil {
			e := fmt.Sprintf("%v", err)
			s.log.Error("ws readMsgLoop error", zap.String("err", e))
		}
		s.Close()
	}()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.log.Info("ws_server read msg end", zap.Error(err))
			return
		}

		plain, ok := s.decode(data)
		if !ok {
			continue
		}

		reqBody := ReqBody{}
		dec := json.NewDecoder(bytes.NewReader(plain))
		// unit_id 是 64 位句柄，不能经过 float64
		dec.UseNumber()
		if err := dec.Decode(&reqBody); err != nil {
			s.log.Warn("ws_server readMsgLoop unmarshal json error", zap.Error(err))
			continue
		}

		req := WsMsgReq{Body: &reqBody, Conn: s}
		// req 和 resp 的 Seq 必须一致
		resp := WsMsgResp{Body: &RespBody{Seq: req.Body.Seq, Name: reqBody.Name}}
		if reqBody.Name == HeartbeatMsg {
			h := &Heartbeat{}
			_ = mapstructure.WeakDecode(reqBody.Msg, h)
			h.STime = time.Now().UnixMilli()
			resp.Body.Code = 0
			resp.Body.Msg = h
		} else {
			s.log.Debug("ws_server read msg", zap.String("name", reqBody.Name), zap.Int64("seq", reqBody.Seq))
			s.router.Dispatch(&req, &resp)
		}

		s.enqueue(&resp)
	}
}

// decode 明文模式直接返回；加密模式先解压再解密。
func (s *WsServer) decode(data []byte) ([]byte, bool) {
	if !s.needSecret {
		return data, true
	}
	secretData, err := security.UnZip(data)
	if err != nil {
		s.log.Warn("ws_server readMsgLoop unzip", zap.Error(err))
		return nil, false
	}

	secretKey, _ := s.GetProperty(SecretKey).(string)
	if secretKey == "" {
		s.log.Warn("ws_server readMsgLoop not found secretKey")
		return nil, false
	}

	decryptedData, err := security.AesCBCDecrypt(secretData, []byte(secretKey), []byte(secretKey), openssl.ZEROS_PADDING)
	if err != nil {
		s.log.Warn("ws_server readMsgLoop decrypt error", zap.Error(err))
		// 出错后，重新握手
		s.handshake()
		return nil, false
	}
	return decryptedData, true
}

func (s *WsServer) writeMsgLoop() {
	for {
		select {
		case msg := <-s.outChan:
			s.write(msg)
		case <-s.done:
			return
		}
	}
}

func (s *WsServer) Close() {
	s.closeOnce.Do(func() {
		_ = s.conn.Close()
		close(s.done)
	})
}

func (s *WsServer) Done() <-chan struct{} {
	return s.done
}

func (s *WsServer) write(msg *WsMsgResp) {
	marshal, err := json.Marshal(msg.Body)
	if err != nil {
		s.log.Error("ws_server write marshal json error", zap.Error(err))
		return
	}

	if !s.needSecret {
		if err := s.writeFrame(websocket.TextMessage, marshal); err != nil {
			s.log.Warn("ws_server write error", zap.Error(err))
			s.Close()
		}
		return
	}

	secretKey, _ := s.GetProperty(SecretKey).(string)
	if secretKey == "" {
		s.log.Warn("ws_server write not found secretKey", zap.String("name", msg.Body.Name))
		return
	}

	encryptedData, err := security.AesCBCEncrypt(marshal, []byte(secretKey), []byte(secretKey), openssl.ZEROS_PADDING)
	if err != nil {
		s.log.Error("ws_server write encrypt error", zap.Error(err))
		return
	}

	zip, err := security.Zip(encryptedData)
	if err != nil {
		s.log.Error("ws_server write zip error", zap.Error(err))
		return
	}

	// 压缩后的密文是二进制字节流，必须走 BinaryMessage，不能走 TextMessage
	if err := s.writeFrame(websocket.BinaryMessage, zip); err != nil {
		s.log.Warn("ws_server write error", zap.Error(err))
		s.Close()
	}
}

func (s *WsServer) handshake() {
	secretKey, _ := s.GetProperty(SecretKey).(string)
	if secretKey == "" {
		secretKey = utils.RandSeq(keyAlphabet, 16)
		s.SetProperty(SecretKey, secretKey)
	}

	body := &RespBody{Name: HandshakeMsg, Msg: &Handshake{Key: secretKey}}
	data, err := json.Marshal(body)
	if err != nil {
		s.log.Error("ws_server handshake marshal json error", zap.Error(err))
		return
	}

	zipData, err := security.Zip(data)
	if err != nil {
		s.log.Error("ws_server handshake zip error", zap.Error(err))
		return
	}
	if err := s.writeFrame(websocket.BinaryMessage, zipData); err != nil {
		s.log.Warn("ws_server handshake write error", zap.Error(err))
	}
}

func (s *WsServer) writeFrame(messageType int, data []byte) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(messageType, data)
}
