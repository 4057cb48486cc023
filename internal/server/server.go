package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"TickerWatch/internal/buffer"
	"TickerWatch/internal/metrics"
)

// Server exposes the query surface: GET /tail/{n} drains up to n of the
// most recent indicator records, oldest first, as a JSON array. It also
// serves /healthz and the Prometheus /metrics endpoint.
type Server struct {
	buffer  *buffer.RingBuffer
	metrics *metrics.Metrics
	srv     *http.Server
}

// New builds the router and the underlying http.Server. reg may carry any
// metrics registered elsewhere in the process.
func New(addr string, rb *buffer.RingBuffer, m *metrics.Metrics, reg *prometheus.Registry) *Server {
	s := &Server{buffer: rb, metrics: m}

	r := mux.NewRouter()
	r.HandleFunc("/tail/{n}", s.handleTail).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "ok")
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	s.srv = &http.Server{Addr: addr, Handler: r}
	return s
}

func (s *Server) handleTail(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(mux.Vars(r)["n"])
	if err != nil || n < 0 {
		http.Error(w, "invalid record count", http.StatusBadRequest)
		return
	}

	records := s.buffer.Drain(n)
	s.metrics.DrainsTotal.Inc()
	s.metrics.DrainedRecords.Add(float64(len(records)))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		log.Printf("[ERROR] encode tail response: %v", err)
	}
}

// Start serves in the background until Shutdown.
func (s *Server) Start() {
	go func() {
		log.Printf("[INFO] http server on %s (/tail/{n}, /healthz, /metrics)", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] http server: %v", err)
		}
	}()
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
