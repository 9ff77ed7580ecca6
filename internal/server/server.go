// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/itsatony/fieldhub/api"
	"github.com/itsatony/fieldhub/api/middleware"
	"github.com/itsatony/fieldhub/internal/config"
	"github.com/itsatony/fieldhub/internal/database"
	"github.com/itsatony/fieldhub/internal/hubservice"
	"github.com/itsatony/fieldhub/internal/monitoring"
	"github.com/itsatony/fieldhub/internal/repository"
	"github.com/itsatony/fieldhub/internal/repository/rediscache"
	"github.com/itsatony/fieldhub/internal/repository/sqlstore"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	db         database.DB
	redis      *redis.Client
	hubservice *hubservice.HubService
	monitoring *monitoring.Service
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config: cfg,
		srv:    srv,
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize services
	if err := s.initializeHubService(ctx); err != nil {
		s.close()
		return err
	}
	s.monitoring = monitoring.NewService(monitoring.Config{
		Quiet: s.config.Monitoring.LogLevel != "debug",
	})

	// Feed hub events into monitoring
	s.setupEventHandlers()

	// Setup routes
	s.srv.Handler = api.NewRouter(s.hubservice, s.monitoring, middleware.Config{
		AllowedOrigins: s.config.CORS.AllowedOrigins,
	})

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	defer s.close()
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) setupEventHandlers() {
	s.hubservice.On(hubservice.EventRecordIngested, func(id string) {
		s.monitoring.RecordEvent(hubservice.EventRecordIngested, map[string]string{
			"record_id": id,
		})
	})

	s.hubservice.On(hubservice.EventScheduleReplaced, func(rows string) {
		nuts.L.Infof("[Schedule] Stored schedule replaced with %s rows", rows)
		s.monitoring.RecordEvent(hubservice.EventScheduleReplaced, map[string]string{
			"rows": rows,
		})
	})

	s.hubservice.On(hubservice.EventScheduleEditSubmitted, func(size string) {
		if n, err := strconv.ParseUint(size, 10, 64); err == nil {
			nuts.L.Infof("[Mailbox] Schedule edit queued (%s)", humanize.Bytes(n))
		}
		s.monitoring.RecordEvent(hubservice.EventScheduleEditSubmitted, map[string]string{
			"bytes": size,
		})
	})

	s.hubservice.On(hubservice.EventScheduleReadRequested, func(string) {
		nuts.L.Infof("[Mailbox] Schedule read requested")
		s.monitoring.RecordEvent(hubservice.EventScheduleReadRequested, nil)
	})

	s.hubservice.On(hubservice.EventDevicePolled, func(kind string) {
		s.monitoring.RecordEvent(hubservice.EventDevicePolled, map[string]string{
			"delivered": kind,
		})
	})
}

// initializeHubService opens the stores and creates the hub service
func (s *Server) initializeHubService(ctx context.Context) error {
	db, err := database.Open(ctx, s.config.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	nuts.L.Infof("[Server] Connected to %s database", db.Driver())

	// Initialize repositories
	records := sqlstore.NewRecordRepository(db)
	schedules := sqlstore.NewScheduleRepository(db)
	if err := records.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to create records table: %w", err)
	}
	if err := schedules.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to create schedule table: %w", err)
	}

	var latest repository.LatestRecordCache
	if s.config.Redis.Enabled() {
		client, err := rediscache.NewClient(ctx, s.config.Redis)
		if err != nil {
			// cache is optional
			nuts.L.Warnf("[Server] Latest record cache disabled: %v", err)
		} else {
			s.redis = client
			latest = rediscache.NewLatestRecordCache(client, s.config.Redis)
			nuts.L.Infof("[Server] Latest record cache enabled at %s", s.config.Redis.Addr)
		}
	}

	s.hubservice = hubservice.New(records, schedules, latest)
	return s.hubservice.Validate()
}

func (s *Server) close() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing redis: %v", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing database: %v", err)
		}
	}
}
