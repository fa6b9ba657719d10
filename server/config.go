package server

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// Config 进程启动参数
type Config struct {
	Port      int
	LogFile   string
	LogLevel  string
	StaticDir string
}

// DefaultConfig 默认：3000 端口，日志写 app.log（info 级别），静态资源在 web 目录
func DefaultConfig() Config {
	return Config{Port: 3000, LogFile: "app.log", LogLevel: "info", StaticDir: "web"}
}

// Validate 检查配置是否可用
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.Errorf("invalid port %d", c.Port)
	}
	if c.LogFile == "" {
		return errors.New("log file must not be empty")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}

// Addr 监听地址
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
