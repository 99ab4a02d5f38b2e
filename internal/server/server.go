// Package server exposes map generation as a WebSocket service: clients
// connect to /generate, send JSON requests and receive map artifacts.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/TylerStocks1/gores-mapgen/internal/config"
	"github.com/TylerStocks1/gores-mapgen/internal/logger"
	"github.com/TylerStocks1/gores-mapgen/internal/presets"
	"github.com/TylerStocks1/gores-mapgen/internal/store"
)

// Server serves generation requests over WebSocket connections.
type Server struct {
	cfg      *config.ServiceConfig
	provider presets.Provider
	store    *store.Store // nil disables archiving

	httpSrv *http.Server
}

// New creates a server. The store may be nil, in which case generated
// maps are returned but not archived.
func New(cfg *config.ServiceConfig, provider presets.Provider, st *store.Store) *Server {
	return &Server{
		cfg:      cfg,
		provider: provider,
		store:    st,
	}
}

// Start listens on the configured address and blocks until Shutdown.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate", s.handleUpgrade)

	s.httpSrv = &http.Server{Addr: s.cfg.Listen, Handler: mux}

	logger.Info("Generation server listening", "address", s.cfg.Listen)
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// handleUpgrade upgrades an HTTP connection to WebSocket.
func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.WebSocket.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("Connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		return
	}

	go s.handleConnection(conn)
}

// handleConnection serves generation requests on one connection until the
// client disconnects. Requests on a connection are handled in order.
func (s *Server) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	if s.cfg.WebSocket.MaxMessageSize > 0 {
		conn.SetReadLimit(s.cfg.WebSocket.MaxMessageSize)
	}

	remote := conn.RemoteAddr().String()
	logger.Info("Client connected", "remote_addr", remote)

	for {
		var req GenerateRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warning("Client read failed", "remote_addr", remote, "error", err)
			} else {
				logger.Info("Client disconnected", "remote_addr", remote)
			}
			return
		}

		resp := s.Generate(&req)
		if err := conn.WriteJSON(resp); err != nil {
			logger.Error("Failed to write response", "remote_addr", remote, "error", err)
			return
		}
	}
}
