package server

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter 装配 HTTP 路由：WebSocket 接入、管理与监控接口、静态资源
func NewRouter(hub *Hub, cfg Config) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ws", HandleWS(hub))
	r.HandleFunc("/healthz", handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/metrics", HandleMetrics(hub)).Methods(http.MethodGet)
	r.HandleFunc("/admin/matches", HandleMatches(hub)).Methods(http.MethodGet)
	r.HandleFunc("/admin/matches/{code}", HandleMatch(hub)).Methods(http.MethodGet)
	if cfg.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))
	}
	return handlers.CombinedLoggingHandler(AccessLogWriter(), r)
}
