package mongo

import (
	"context"
	"errors"
	"net/url"
	"time"

	"IslandConquest/internal/shared/serverconfig"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

const (
	defaultDatabase       = "island_conquest"
	defaultConnectTimeout = 3 * time.Second
)

// Open 连接并 ping 一次，失败时断开。
func Open(cfg serverconfig.MongoDBConfig, l *zap.Logger) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongodb uri is empty")
	}
	if l == nil {
		l = zap.NewNop()
	}
	timeout := time.Duration(cfg.ConnectTimeoutS) * time.Second
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	opts := options.Client().ApplyURI(cfg.URI).SetConnectTimeout(timeout).SetAppName("island-conquest")
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	l.Info("open mongodb success", zap.String("uri", redact(cfg.URI)), zap.String("database", dbName(cfg)))
	return client, nil
}

// Database 库名为空时用默认库。
func Database(client *mongo.Client, cfg serverconfig.MongoDBConfig) *mongo.Database {
	return client.Database(dbName(cfg))
}

// Close 最多等 timeout 断开连接。
func Close(client *mongo.Client, timeout time.Duration) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return client.Disconnect(ctx)
}

func dbName(cfg serverconfig.MongoDBConfig) string {
	if cfg.Database == "" {
		return defaultDatabase
	}
	return cfg.Database
}

// redact 日志里去掉 uri 中的密码。
func redact(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.User == nil {
		return uri
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
