package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"doodlewar/server"
)

// Doodle War 入口：启动 HTTP + WebSocket 服务与比赛事件循环
func main() {
	app := cli.NewApp()
	app.Name = "doodlewar"
	app.Usage = "authoritative server for the two-player doodle arena shooter"
	def := server.DefaultConfig()
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "port, p", Value: def.Port, Usage: "listen port", EnvVar: "PORT"},
		cli.StringFlag{Name: "log-file", Value: def.LogFile, Usage: "log file path (rotated)", EnvVar: "LOG_FILE"},
		cli.StringFlag{Name: "log-level", Value: def.LogLevel, Usage: "debug, info, warn or error", EnvVar: "LOG_LEVEL"},
		cli.StringFlag{Name: "static", Value: def.StaticDir, Usage: "directory served at /", EnvVar: "STATIC_DIR"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := server.Config{
		Port:      c.Int("port"),
		LogFile:   c.String("log-file"),
		LogLevel:  c.String("log-level"),
		StaticDir: c.String("static"),
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "config")
	}
	// 使用第三方 zap 日志库写入日志文件（带滚动）
	if err := server.InitLogger(cfg.LogFile, cfg.LogLevel); err != nil {
		return errors.Wrap(err, "init logger")
	}
	defer server.SyncLogger()

	if fi, err := os.Stat(cfg.StaticDir); err != nil || !fi.IsDir() {
		server.Log.Warnf("static dir %q not found, serving API only", cfg.StaticDir)
		cfg.StaticDir = ""
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := server.NewHub(&server.Metrics{})
	hubDone := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(hubDone)
	}()

	srv := &http.Server{Addr: cfg.Addr(), Handler: server.NewRouter(hub, cfg)}
	serveErr := make(chan error, 1)
	go func() {
		server.Log.Infof("Doodle War listening on %s; open http://localhost%s/", cfg.Addr(), cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		return errors.Wrap(err, "listen")
	}
	server.Log.Info("Shutting down...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	err := srv.Shutdown(shutdownCtx)
	cancel()
	<-hubDone
	return err
}
