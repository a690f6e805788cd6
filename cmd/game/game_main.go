package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"IslandConquest/internal/gate/interfaces"
	"IslandConquest/internal/gate/interfaces/handler"
	roomactor "IslandConquest/internal/room/actor"
	"IslandConquest/internal/room/actors"
	"IslandConquest/internal/room/service"
	"IslandConquest/internal/shared/logs"
	"IslandConquest/internal/shared/serverconfig"
	"IslandConquest/internal/shared/session"
	"IslandConquest/internal/shared/telemetry"
	transportgrpc "IslandConquest/internal/shared/transport/grpc"
	transporthttp "IslandConquest/internal/shared/transport/http"
	"IslandConquest/internal/shared/transport/ws"
	"IslandConquest/internal/shared/utils"
	"IslandConquest/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 本地开发可把 JWT_SECRET、ROOM_SEED_NODE 写在 .env，已存在的环境变量不会被覆盖
	_ = godotenv.Load()

	err := serverconfig.Load("", func(next *serverconfig.Config) {
		logs.SetLevel(next.Log.Level)
		logs.Info("config reloaded", zap.String("log_level", next.Log.Level))
	})
	if err != nil {
		panic(err)
	}
	conf := serverconfig.Conf
	if err := logs.Init("game", conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("gameserver", conf.GameServer), zap.Any("rules", conf.Rules), zap.String("archive", conf.Archive.Driver))
	logger := logx.NewZapLogger(logs.Logger())

	metrics := telemetry.NewProvider()
	metrics.Install()

	archive, closeArchive, err := openArchive(conf.Archive)
	if err != nil {
		logs.Fatal("open archive failed", zap.String("driver", conf.Archive.Driver), zap.Error(err))
	}
	defer closeArchive()

	sess := session.NewSessMgr()
	rules := conf.Rules
	rt := roomactor.NewRuntime(actors.Options{
		Service: service.NewRoomService(service.Rules{
			Rows:           rules.MapRows,
			Cols:           rules.MapCols,
			ResourcePoints: rules.ResourcePoints,
		}),
		Archive:     archive,
		Publisher:   handler.NewSessionPublisher(sess),
		TurnTimeout: time.Duration(rules.TurnTimeoutS) * time.Second,
		IdleTimeout: time.Duration(rules.RoomIdleTimeoutS) * time.Second,
		FlushEvery:  time.Duration(rules.FlushEveryMS) * time.Millisecond,
		Seed:        roomSeed,
	}, time.Duration(conf.GameServer.AskTimeoutMS)*time.Millisecond)
	defer rt.Shutdown()

	router := ws.NewRouter(logger)
	wsServer := ws.NewServer(router, conf.GameServer.NeedSecret, logger)
	module := interfaces.New(sess, rt, wsServer, logger)
	module.WsRegister(router)

	engine := gin.New()
	engine.Use(gin.Recovery())
	httpAddr := fmt.Sprintf("%s:%d", hostOr(conf.GameServer.Host), conf.GameServer.Port)
	httpServer := transporthttp.NewHttpServer(httpAddr, engine, logger)
	module.HttpRegister(httpServer.Group())
	engine.GET("/debug/metrics", metrics.GinHandler())

	grpcServer := transportgrpc.NewServer()
	grpcAddr := fmt.Sprintf("%s:%d", hostOr(conf.GRPCServer.Host), conf.GRPCServer.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		logs.Info("game http/ws server started", zap.String("addr", httpAddr), zap.Bool("need_secret", conf.GameServer.NeedSecret))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("game http serve failed: %w", err)
		}
	}()
	go func() {
		logs.Info("game grpc health server started", zap.String("addr", grpcAddr))
		if err := grpcServer.Listen(grpcAddr); err != nil {
			errCh <- fmt.Errorf("game grpc serve failed: %w", err)
		}
	}()
	grpcServer.SetServing(true)

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	grpcServer.SetServing(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logs.Warn("http shutdown", zap.Error(err))
	}

	stopCh := make(chan struct{})
	go func() {
		grpcServer.Stop()
		close(stopCh)
	}()
	select {
	case <-stopCh:
	case <-shutdownCtx.Done():
	}
	_ = metrics.Shutdown(context.Background())
}

func hostOr(host string) string {
	if host == "" {
		return "0.0.0.0"
	}
	return host
}

// roomSeed 同一进程内不重复。
func roomSeed() uint64 {
	seed, err := utils.RoomSeed()
	if err != nil {
		return uint64(time.Now().UnixNano())
	}
	return seed
}
