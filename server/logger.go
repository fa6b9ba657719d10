package server

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log 全局 SugaredLogger；InitLogger 之前为空实现，测试中无需初始化
var Log = zap.NewNop().Sugar()

var logEncoding = zapcore.EncoderConfig{
	TimeKey:       "ts",
	LevelKey:      "level",
	NameKey:       "logger",
	CallerKey:     "caller",
	MessageKey:    "msg",
	StacktraceKey: "stack",
	LineEnding:    zapcore.DefaultLineEnding,
	EncodeLevel:   zapcore.CapitalLevelEncoder,
	EncodeTime:    zapcore.ISO8601TimeEncoder,
	EncodeCaller:  zapcore.ShortCallerEncoder,
}

// rotatingFile 10MB 一个文件，保留 3 个备份、7 天
func rotatingFile(path string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
	})
}

// InitLogger 把 Log 切换为写入滚动文件的 logger，level 如 "debug"、"info"
func InitLogger(filePath, level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "log level %q", level)
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(logEncoding), rotatingFile(filePath), lvl)
	Log = zap.New(core, zap.AddCaller()).Sugar()
	return nil
}

// AccessLogWriter HTTP 访问日志按 Info 级别写入同一个 logger
func AccessLogWriter() io.Writer {
	return zap.NewStdLog(Log.Desugar().Named("http")).Writer()
}

// SyncLogger 清理和同步缓冲
func SyncLogger() {
	_ = Log.Sync()
}
