package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nerrad567/gray-logic-audio/internal/audit"
	"github.com/nerrad567/gray-logic-audio/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-audio/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-audio/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-audio/internal/routing"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// MQTTClient is the part of the bus client the server uses: connection
// state for metrics and subscriptions for the WebSocket relay.
type MQTTClient interface {
	IsConnected() bool
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config    config.APIConfig
	WebSocket config.WebSocketConfig
	JWT       config.JWTConfig // empty secret disables token checks
	Logger    *logging.Logger
	Routing   *routing.Service
	Journal   audit.Repository // optional
	MQTT      MQTTClient       // optional
	DB        *sql.DB          // optional, for pool metrics
	Version   string
}

// Server is the HTTP API server.
type Server struct {
	cfg       config.APIConfig
	logger    *logging.Logger
	routing   *routing.Service
	journal   audit.Repository
	mqtt      MQTTClient
	db        *sql.DB
	hub       *Hub
	jwtSecret []byte
	version   string
	startTime time.Time
	server    *http.Server
	cancel    context.CancelFunc // stops the hub on Close
}

// New creates a new API server. It is not listening until Start is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Routing == nil {
		return nil, fmt.Errorf("routing service is required")
	}

	s := &Server{
		cfg:       deps.Config,
		logger:    deps.Logger,
		routing:   deps.Routing,
		journal:   deps.Journal,
		mqtt:      deps.MQTT,
		db:        deps.DB,
		hub:       NewHub(deps.WebSocket, deps.Logger.Component("websocket")),
		version:   deps.Version,
		startTime: time.Now(),
	}
	if deps.JWT.Secret != "" {
		s.jwtSecret = []byte(deps.JWT.Secret)
	}
	return s, nil
}

// Handler returns the router with every route and middleware installed.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// Start runs the WebSocket hub, subscribes the relay to route and event
// publications, and begins listening for HTTP connections in a background
// goroutine.
func (s *Server) Start(ctx context.Context) error {
	var hubCtx context.Context
	hubCtx, s.cancel = context.WithCancel(ctx)
	go s.hub.Run(hubCtx)

	if err := s.subscribeRelays(); err != nil {
		s.cancel()
		return fmt.Errorf("subscribing WebSocket relay: %w", err)
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			s.logger.Info("API server starting", "address", s.server.Addr)
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close waits up to 10 seconds for in-flight requests, then closes the
// remaining connections.
func (s *Server) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck reports whether the server has been started.
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
