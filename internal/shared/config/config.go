package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func load[T any](configPath string, newT func() *T, onChange func(*T)) (*T, error) {
	if !fileExist(configPath) {
		return nil, &NotFoundError{Path: configPath}
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	// 环境变量覆盖：gameserver.port -> GAMESERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper read config: %w", err)
	}
	out := newT()
	if err := v.Unmarshal(out); err != nil {
		return nil, fmt.Errorf("viper unmarshal config: %w", err)
	}

	if onChange != nil {
		v.OnConfigChange(func(e fsnotify.Event) {
			next := newT()
			if err := v.Unmarshal(next); err != nil {
				// 热更新失败保留旧配置，不能把进程打挂
				zap.L().Warn("config reload failed", zap.String("file", e.Name), zap.Error(err))
				return
			}
			onChange(next)
		})
		v.WatchConfig()
	}
	return out, nil
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
