package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ferment8/brauhaus-core/internal/auth"
	"github.com/ferment8/brauhaus-core/internal/brewhouse"
	"github.com/ferment8/brauhaus-core/internal/infrastructure/config"
	"github.com/ferment8/brauhaus-core/internal/infrastructure/database"
	"github.com/ferment8/brauhaus-core/internal/infrastructure/logging"
	"github.com/ferment8/brauhaus-core/internal/infrastructure/mqtt"
	"github.com/ferment8/brauhaus-core/internal/recipe"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Brewer is the brewhouse surface the API drives. All methods are flag
// or snapshot based, so handler goroutines never block a control tick.
type Brewer interface {
	Snapshot() brewhouse.Snapshot
	Session() *brewhouse.SessionInfo
	StartSession(r *recipe.Recipe) (*brewhouse.Session, error)
	StopSession() error
	GrantPermission() error
	SetStateByName(name string) error
	SetEmergencyStop(engaged bool)
}

// RecipeStore is the recipe library surface the API reads.
type RecipeStore interface {
	Get(ctx context.Context, id string) (*recipe.Recipe, error)
	List(ctx context.Context) ([]recipe.Recipe, error)
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config  config.APIConfig
	WS      config.WebSocketConfig
	Logger  *logging.Logger
	Auth    *auth.Service
	Brewer  Brewer
	Recipes RecipeStore
	MQTT    *mqtt.Client // Optional; feeds the metrics endpoint only
	DB      *database.DB // Optional; feeds the metrics endpoint only
	Version string

	// ExternalHub, when set, is used instead of a server-owned hub. The
	// normal wiring creates the hub first so the brewhouse can broadcast
	// through it from its first tick.
	ExternalHub *Hub
}

// Server is the HTTP API server for Brauhaus Core.
//
// It manages the HTTP listener, routes, middleware, and WebSocket hub.
// The server is created with New() and started with Start().
//
// Thread Safety: all methods are safe for concurrent use.
type Server struct {
	cfg       config.APIConfig
	wsCfg     config.WebSocketConfig
	logger    *logging.Logger
	auth      *auth.Service
	brewer    Brewer
	recipes   RecipeStore
	mqtt      *mqtt.Client
	db        *database.DB
	version   string
	startTime time.Time

	server *http.Server
	hub    *Hub
	cancel context.CancelFunc
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called. The returned
// server's Hub() satisfies brewhouse.Broadcaster, so it is normally
// created before the brewhouse and handed over as the event sink.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("auth service is required")
	}
	if deps.Brewer == nil {
		return nil, fmt.Errorf("brewer is required")
	}
	if deps.Recipes == nil {
		return nil, fmt.Errorf("recipe store is required")
	}

	s := &Server{
		cfg:       deps.Config,
		wsCfg:     deps.WS,
		logger:    deps.Logger,
		auth:      deps.Auth,
		brewer:    deps.Brewer,
		recipes:   deps.Recipes,
		mqtt:      deps.MQTT,
		db:        deps.DB,
		version:   deps.Version,
		startTime: time.Now(),
	}
	if deps.ExternalHub != nil {
		s.hub = deps.ExternalHub
	} else {
		s.hub = NewHub(deps.WS, deps.Logger)
	}

	return s, nil
}

// Hub returns the WebSocket hub, for use as the brewhouse broadcaster.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start begins listening for HTTP connections.
//
// It starts the WebSocket hub and launches the HTTP listener in a
// background goroutine. The server is stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	// Internal context so Close() can stop the hub independently of the
	// parent context.
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	go s.hub.Run(srvCtx)

	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	s.logger.Info("API server listening", "address", s.server.Addr)
	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running and responsive.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
