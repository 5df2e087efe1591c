// Package web serves the hub to browsers: a JSON API over the player's
// economy and settings, and a websocket that streams a live match.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/games-hub/internal/hub"
)

// Config configures the web server.
type Config struct {
	Addr string
	FPS  int
	// Width and Height are the default playfield in device pixels when the
	// client does not send its own.
	Width, Height float64
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{Addr: ":8080", FPS: 60, Width: 800, Height: 600}
}

// Server is the HTTP front end of the hub.
type Server struct {
	cfg     Config
	hub     *hub.Hub
	logger  *log.Logger
	engine  *gin.Engine
	started time.Time
}

// NewServer builds the router. It does not start listening.
func NewServer(cfg Config, h *hub.Hub) *Server {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		def := DefaultConfig()
		cfg.Width, cfg.Height = def.Width, def.Height
	}

	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		cfg:     cfg,
		hub:     h,
		logger:  h.Logger().WithPrefix("web"),
		engine:  gin.New(),
		started: time.Now(),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger(), cors())
	s.routes()
	return s
}

func (s *Server) routes() {
	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/health", s.health)
		v1.GET("/games", s.listGames)
		v1.GET("/share", s.share)

		player := v1.Group("", s.withPlayer())
		{
			player.GET("/economy", s.getEconomy)
			player.GET("/leaderboard", s.getLeaderboard)
			player.GET("/history", s.getHistory)

			player.GET("/shop", s.getShop)
			player.POST("/shop/buy", s.buy)
			player.POST("/shop/equip", s.equip)

			player.GET("/settings", s.getSettings)
			player.PUT("/settings/difficulty", s.setDifficulty)
			player.PUT("/settings/audio", s.setAudio)
			player.PUT("/settings/theme", s.setTheme)
		}
	}

	s.engine.GET("/ws/play", s.withPlayer(), s.play)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve listens on the configured address until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestLogger logs each request through the hub logger.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// cors allows the browser client to be served from anywhere.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Player")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
