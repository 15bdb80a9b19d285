// internal/monitoring/server.go
package monitoring

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hwcatalog/harvester/internal/logging"
)

// Server exposes /metrics, /healthz and the last run report at /report.
type Server struct {
	metrics *Metrics
	log     logging.Logger
	httpSrv *http.Server

	mu     sync.RWMutex
	report interface{}
}

// NewServer wires the status routes. Call Start to begin listening.
func NewServer(listen string, metrics *Metrics, log logging.Logger) *Server {
	s := &Server{metrics: metrics, log: log}

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{}))
	router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	router.HandleFunc("/report", s.handleReport).Methods(http.MethodGet)

	s.httpSrv = &http.Server{
		Addr:         listen,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// SetReport publishes the latest run report for /report.
func (s *Server) SetReport(report interface{}) {
	s.mu.Lock()
	s.report = report
	s.mu.Unlock()
}

// Start listens in a background goroutine.
func (s *Server) Start() {
	go func() {
		s.log.Infof("status server listening on %s", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Errorf("status server failed: %v", err)
		}
	}()
}

// Shutdown stops the listener, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	report := s.report
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if report == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := json.NewEncoder(w).Encode(report); err != nil {
		s.log.Errorf("failed to encode report: %v", err)
	}
}
