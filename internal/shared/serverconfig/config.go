package serverconfig

import (
	"os"
	"sync/atomic"

	"IslandConquest/internal/shared/config"
)

var (
	// Conf 是启动时加载的配置快照，main 之后只读。
	Conf Config

	latest atomic.Pointer[Config]
)

// Default 返回内置默认值，配置文件里没写的字段保持这里的值。
func Default() *Config {
	return &Config{
		GameServer: GameServerConfig{
			Host:         "0.0.0.0",
			Port:         5000,
			AskTimeoutMS: 3000,
		},
		GRPCServer: GRPCServerConfig{
			Host: "0.0.0.0",
			Port: 5001,
		},
		Rules: RulesConfig{
			TurnTimeoutS:     180,
			RoomIdleTimeoutS: 1800,
			MapRows:          32,
			MapCols:          64,
			ResourcePoints:   40,
			FlushEveryMS:     3000,
		},
		Archive: ArchiveConfig{
			Driver: "memory",
			MongoDB: MongoDBConfig{
				Database:        "island_conquest",
				ConnectTimeoutS: 3,
			},
			Postgres: PostgresConfig{Port: 5432, SSLMode: "disable"},
			SQLite:   SQLiteConfig{Path: "island_conquest.db"},
		},
		Log: LogConfig{
			Level:   "info",
			MaxSize: 100,
		},
	}
}

// Load 加载配置；onChange 在配置文件变更后收到新值（只用于日志级别等可热更新项）。
func Load(path string, onChange func(*Config)) error {
	c, err := config.Load(path, Default, func(next *Config) {
		latest.Store(next)
		if onChange != nil {
			onChange(next)
		}
	})
	if err != nil {
		return err
	}
	Conf = *c
	latest.Store(c)
	// 环境变量优先；若未设置则回填配置中的 jwt_secret，兼容本地开发场景。
	if os.Getenv("JWT_SECRET") == "" && Conf.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", Conf.JWTSecret)
	}
	return nil
}

// Latest 返回最近一次热更新后的配置。
func Latest() *Config {
	if c := latest.Load(); c != nil {
		return c
	}
	return Default()
}
