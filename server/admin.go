package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// HandleMetrics 输出运行指标
// GET /metrics
func HandleMetrics(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, hub.Metrics().Snapshot())
	}
}

// HandleMatches 列出现存比赛
// GET /admin/matches
func HandleMatches(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"matches": hub.Matches()})
	}
}

// HandleMatch 单场比赛概要
// GET /admin/matches/{code}
func HandleMatch(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := mux.Vars(r)["code"]
		var (
			out   MatchSummary
			found bool
		)
		hub.Call(func() {
			if m, ok := hub.registry.Lookup(code); ok {
				out, found = m.summary(), true
			}
		})
		if !found {
			http.Error(w, "match not found", http.StatusNotFound)
			return
		}
		writeJSON(w, out)
	}
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("ok"))
}
