// Package api provides the HTTP and WebSocket server for the journal
// dashboard client.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/tradelens/journal-backend/internal/analytics"
	"github.com/tradelens/journal-backend/internal/importer"
	"github.com/tradelens/journal-backend/internal/journal"
	"github.com/tradelens/journal-backend/internal/metrics"
	"github.com/tradelens/journal-backend/pkg/types"
)

// Server is the HTTP/WebSocket API server.
type Server struct {
	logger     *zap.Logger
	config     *types.Config
	router     *mux.Router
	httpServer *http.Server
	upgrader   websocket.Upgrader
	store      *journal.Store
	importer   *importer.Importer
	hub        *Hub
}

// NewServer creates the API server and wires its routes.
func NewServer(logger *zap.Logger, config *types.Config, store *journal.Store, hub *Hub) *Server {
	server := &Server{
		logger:   logger,
		config:   config,
		router:   mux.NewRouter(),
		store:    store,
		importer: importer.New(logger),
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Origin policy enforced by the CORS layer
			},
		},
	}

	server.setupRoutes()
	return server
}

// Router exposes the underlying router, mainly for tests.
func (s *Server) Router() *mux.Router {
	return s.router
}

// setupRoutes configures HTTP routes.
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", s.instrument("health", s.handleHealth)).Methods("GET")

	// Journal endpoints
	api.HandleFunc("/trades", s.instrument("trades_list", s.handleListTrades)).Methods("GET")
	api.HandleFunc("/trades", s.instrument("trades_add", s.handleAddTrade)).Methods("POST")
	api.HandleFunc("/trades", s.instrument("trades_replace", s.handleReplaceTrades)).Methods("PUT")
	api.HandleFunc("/trades/{id}", s.instrument("trades_delete", s.handleDeleteTrade)).Methods("DELETE")
	api.HandleFunc("/import/csv", s.instrument("import_csv", s.handleImportCSV)).Methods("POST")

	// Analytics endpoints
	api.HandleFunc("/analytics/cumulative", s.instrument("cumulative", s.handleCumulative)).Methods("GET")
	api.HandleFunc("/analytics/winloss", s.instrument("winloss", s.handleWinLoss)).Methods("GET")
	api.HandleFunc("/analytics/daily", s.instrument("daily", s.handleDaily)).Methods("GET")
	api.HandleFunc("/analytics/drawdown", s.instrument("drawdown", s.handleDrawdown)).Methods("GET")
	api.HandleFunc("/analytics/volatility", s.instrument("volatility", s.handleVolatility)).Methods("GET")
	api.HandleFunc("/analytics/streaks", s.instrument("streaks", s.handleStreaks)).Methods("GET")
	api.HandleFunc("/analytics/segments", s.instrument("segments", s.handleSegments)).Methods("GET")
	api.HandleFunc("/analytics/summary", s.instrument("summary", s.handleSummary)).Methods("GET")

	// WebSocket
	s.router.HandleFunc(s.config.Server.WebSocketPath, s.handleWebSocket)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	handler := cors.New(cors.Options{
		AllowedOrigins:   s.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(s.router)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	s.logger.Info("Starting API server", zap.String("addr", addr))

	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// instrument wraps a handler with a per-route request counter.
func (s *Server) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"trades": s.store.Count(),
	})
}

// handleListTrades returns the full journal.
func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	trades := s.store.Snapshot()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"trades": trades,
		"count":  len(trades),
	})
}

// handleAddTrade accepts a single raw trade record.
func (s *Server) handleAddTrade(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	trade, ok := analytics.NormalizeTrade(raw)
	if !ok {
		metrics.TradesRejected.Inc()
		http.Error(w, "Record lacks a parsable date or P&L", http.StatusUnprocessableEntity)
		return
	}
	if trade.ID == "" {
		trade.ID = uuid.New().String()
	}

	if err := s.store.Add(trade); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.TradesImported.Inc()

	s.writeJSON(w, http.StatusCreated, trade)
}

// handleReplaceTrades swaps the entire journal for a new record set,
// for restoring a backup or re-syncing from an external source. Records
// the normalizer rejects are dropped and counted.
func (s *Server) handleReplaceTrades(w http.ResponseWriter, r *http.Request) {
	var raws []map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raws); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	trades := analytics.NormalizeTrades(raws)
	rejected := len(raws) - len(trades)

	if err := s.store.Replace(trades); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.TradesRejected.Add(float64(rejected))

	s.writeJSON(w, http.StatusOK, map[string]int{
		"trades":   len(trades),
		"rejected": rejected,
	})
}

// handleDeleteTrade removes a trade by ID.
func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	found, err := s.store.Remove(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Trade not found", http.StatusNotFound)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}

// handleImportCSV imports a broker CSV export. The file arrives either
// as a multipart "file" part or as the raw request body.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	source := r.URL.Query().Get("source")
	if source == "" {
		source = "upload"
	}

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		body = file
		source = header.Filename
	}

	trades, report, err := s.importer.ImportCSV(body, source)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.AddBatch(trades); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	metrics.TradesImported.Add(float64(report.Imported))
	metrics.TradesRejected.Add(float64(report.Skipped))

	if s.hub != nil {
		s.hub.BroadcastImportComplete(report)
	}

	s.writeJSON(w, http.StatusOK, report)
}

// handleWebSocket upgrades the connection and attaches it to the hub.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(uuid.New().String(), s.hub, conn)
	s.hub.Register(client)

	go client.ReadPump()
	go client.WritePump()
}
