package logs

import (
	"os"
	"strings"
	"sync/atomic"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"IslandConquest/internal/shared/serverconfig"
)

var (
	current     atomic.Pointer[zap.Logger]
	atomicLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func init() {
	current.Store(zap.NewNop())
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// Init 控制台彩色输出；配置了 file_dir 时另写一份 JSON 滚动文件，配置了 gelf_addr 时同时发往 graylog。
func Init(appName string, cfg serverconfig.LogConfig) error {
	SetLevel(cfg.Level)

	consoleCfg := encoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), atomicLevel),
	}
	if cfg.FileDir != "" {
		jsonCfg := encoderConfig()
		jsonCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), zapcore.AddSync(rotating(cfg)), atomicLevel))
	}
	if cfg.GelfAddr != "" {
		w, err := gelf.NewWriter(cfg.GelfAddr)
		if err != nil {
			return err
		}
		w.Facility = appName
		jsonCfg := encoderConfig()
		jsonCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), zapcore.AddSync(w), atomicLevel))
	}

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Dev {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}
	Replace(zap.New(zapcore.NewTee(cores...), opts...).Named(appName))
	return nil
}

func rotating(cfg serverconfig.LogConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.FileDir,
		MaxSize:    max(1, cfg.MaxSize),
		MaxBackups: max(0, cfg.MaxBackups),
		MaxAge:     max(0, cfg.MaxAge),
		Compress:   cfg.Compress,
	}
}

// Replace 替换全局 logger，旧的先刷盘；zap.L() 同步指向新 logger。
func Replace(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	if old := current.Swap(l); old != nil {
		_ = old.Sync()
	}
	zap.ReplaceGlobals(l)
}

// SetLevel 配置热更新时调用；无法解析时回退到 info。
func SetLevel(level string) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zapcore.InfoLevel
	}
	atomicLevel.SetLevel(lvl)
}

func Level() zapcore.Level {
	return atomicLevel.Level()
}

// Logger 当前全局 logger，未初始化时是 Nop。
func Logger() *zap.Logger {
	return current.Load()
}

// Room 带 room_id 的子 logger。
func Room(roomID string) *zap.Logger {
	return Logger().With(zap.String("room_id", roomID))
}

func Sync() {
	_ = Logger().Sync()
}

func Debug(msg string, fields ...zap.Field) { Logger().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { Logger().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { Logger().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { Logger().Error(msg, fields...) }

// Fatal 记录后退出进程。
func Fatal(msg string, fields ...zap.Field) { Logger().Fatal(msg, fields...) }
