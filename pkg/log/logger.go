package log

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L 全局日志实例，Init 之前使用默认的 JSON Info 级别配置
var L *zap.Logger

const projectName = "handloom_market"

func init() {
	L = build("production", zapcore.InfoLevel)
}

// Config 日志配置
type Config struct {
	Level       string // debug / info / warn / error
	Environment string // production 输出 JSON，其余输出彩色控制台格式
	ServiceName string
}

// Init 按配置重建全局 logger，并替换 zap 的全局实例
func Init(cfg Config) *zap.Logger {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	L = build(cfg.Environment, level)
	if cfg.ServiceName != "" {
		L = L.With(zap.String("service", cfg.ServiceName))
	}
	zap.ReplaceGlobals(L)

	L.Info("logger initialized", zap.String("level", level.String()), zap.String("env", cfg.Environment))
	return L
}

func build(env string, level zapcore.Level) *zap.Logger {
	var encoder zapcore.Encoder

	if env == "production" {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeCaller = trimCaller
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeCaller = trimCaller
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}

// trimCaller 只保留项目内的相对路径
func trimCaller(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	index := strings.Index(caller.File, projectName)
	if index != -1 {
		enc.AppendString(caller.File[index:] + ":" + strconv.Itoa(caller.Line))
		return
	}
	enc.AppendString(caller.TrimmedPath())
}
