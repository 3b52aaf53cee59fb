// Package api exposes runtime status over HTTP: a JSON stats snapshot, a
// websocket stream of the same, Prometheus metrics, an optional CPU
// profiler, and a kill switch for the render loop.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/pprof"
	"time"

	"github.com/pkuiper/glquad/lib/config"
	"github.com/pkuiper/glquad/lib/metrics"
	"github.com/pkuiper/glquad/lib/stats"
)

type Api struct {
	srv http.Server
	mux *http.ServeMux
	cfg *config.ApiCfg

	Stats *stats.Stats

	shutdown  func()
	wsClients map[*wsConn]bool
}

func New(cfg *config.ApiCfg, st *stats.Stats, shutdown func()) *Api {
	a := &Api{}
	a.cfg = cfg
	a.mux = http.NewServeMux()
	a.srv.Addr = cfg.Bind
	a.srv.Handler = a.mux
	a.Stats = st
	a.shutdown = shutdown
	a.wsClients = make(map[*wsConn]bool)
	return a
}

func (a *Api) Serve() error {
	if a.cfg.EnableProfiler {
		a.mux.HandleFunc("/prof", a.profileCPU)
	}
	a.mux.HandleFunc("/api/kill", a.suicide)
	a.mux.HandleFunc("/api/stats", a.getStats)
	a.mux.HandleFunc("/api/ws", a.handleWebsocket)
	a.mux.Handle("/metrics", metrics.Handler())
	return a.srv.ListenAndServe()
}

// @Summary	Fetch a point-in-time stats snapshot
// @Router		/api/stats [get]
// @Tags		base
// @Success	200
func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	encoder := json.NewEncoder(w)
	err := encoder.Encode(a.Stats)
	if err != nil {
		http.Error(w, fmt.Sprintf("could not encode stats: %s", err), http.StatusForbidden)
		return
	}
	_, err = fmt.Fprintf(w, "\n")
	if err != nil {
		slog.Error(fmt.Sprintf("could not write response: %s", err), slog.String("module", "api"))
		return
	}
}

// @Summary	Stop the render loop and exit
// @Router		/api/kill [get]
// @Tags		base
// @Success	200
func (a *Api) suicide(w http.ResponseWriter, _ *http.Request) {
	slog.Info("shutting down as per api request", slog.String("module", "api"))
	a.shutdown()
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		slog.Error(fmt.Sprintf("could not write response: %s", err), slog.String("module", "api"))
		return
	}
}

func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

func ServeInBackground(cfg *config.ApiCfg, st *stats.Stats, shutdown func()) *Api {
	var theApi *Api
	if cfg != nil && cfg.Bind != "" {
		theApi = New(cfg, st, shutdown)

		slog.Info("starting web server", slog.String("module", "api"))
		go func() {
			err := theApi.Serve()
			if err != nil {
				slog.Error(fmt.Sprintf("web server failed: %s", err), slog.String("module", "api"))
			}
		}()
	}
	return theApi
}
