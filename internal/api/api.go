// Package api provides HTTP handlers and the main API server logic for
// CurioGate.
//
// It exposes the shell-facing endpoints for conversation turns, suggested
// questions, usage, settings, and emergency unlock. The API wires together
// the store, AI adapter, notifier, and conversation controller.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/curiogate/curiogate/internal/flow"
	"github.com/curiogate/curiogate/internal/genai"
	"github.com/curiogate/curiogate/internal/notify"
	"github.com/curiogate/curiogate/internal/store"
)

// DefaultAddr is the API listen address when none is configured.
const DefaultAddr = ":8321"

// Opts holds configuration options for the API server.
type Opts struct {
	Addr     string
	DBDriver string
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// WithDBDriver selects the settings store backend (sqlite3 or postgres).
func WithDBDriver(driver string) Option {
	return func(o *Opts) { o.DBDriver = driver }
}

// Server holds the API's dependencies.
type Server struct {
	st       store.Store
	engine   *flow.Engine
	ai       genai.ClientInterface
	notifier notify.Notifier
}

// NewServer wires a server from its dependencies.
func NewServer(st store.Store, engine *flow.Engine, ai genai.ClientInterface, notifier notify.Notifier) *Server {
	return &Server{st: st, engine: engine, ai: ai, notifier: notifier}
}

// Run builds all modules from the supplied options and serves the API until
// the listener fails.
func Run(storeOpts []store.Option, genaiOpts []genai.Option, notifyOpts []notify.Option, apiOpts []Option) error {
	var cfg Opts
	for _, opt := range apiOpts {
		opt(&cfg)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	var st store.Store
	var err error
	if cfg.DBDriver == "postgres" {
		st, err = store.NewPostgresStore(storeOpts...)
	} else {
		st, err = store.NewSQLiteStore(storeOpts...)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize settings store: %w", err)
	}
	defer st.Close()

	aiClient, err := genai.NewClient(context.Background(), genaiOpts...)
	if err != nil {
		return fmt.Errorf("failed to initialize AI adapter: %w", err)
	}

	var notifier notify.Notifier
	notifier, err = notify.NewTwilioNotifier(notifyOpts...)
	if err != nil {
		slog.Warn("api.Run: Twilio not configured, parent alerts disabled", "error", err)
		notifier = notify.NopNotifier{}
	}

	engine := flow.NewEngine(flow.NewInMemoryStateManager(), aiClient, st)
	server := NewServer(st, engine, aiClient, notifier)

	mux := http.NewServeMux()
	server.registerRoutes(mux)

	slog.Info("api.Run: CurioGate API listening", "addr", cfg.Addr)
	return http.ListenAndServe(cfg.Addr, mux)
}

// registerRoutes attaches all handlers to the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/session", s.startSessionHandler)
	mux.HandleFunc("/conversation/turn", s.turnHandler)
	mux.HandleFunc("/conversation/suggestions", s.suggestionsHandler)
	mux.HandleFunc("/usage", s.usageHandler)
	mux.HandleFunc("/settings/profile", s.profileHandler)
	mux.HandleFunc("/settings/interests", s.interestsHandler)
	mux.HandleFunc("/settings/pin", s.setPinHandler)
	mux.HandleFunc("/settings/pin/verify", s.verifyPinHandler)
	mux.HandleFunc("/unlock/emergency", s.emergencyUnlockHandler)
	mux.HandleFunc("/unlock/emergency/count", s.emergencyUnlockCountHandler)
}
