package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/config"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/repository/redis"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/service/game"
	transportHttp "github.com/iamasit07/4-in-a-row/hotseat/internal/transport/http"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/transport/http/middleware"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/transport/websocket"
	"github.com/iamasit07/4-in-a-row/hotseat/pkg/logging"
)

func main() {
	envErr := godotenv.Load()
	if envErr != nil {
		envErr = godotenv.Load("../.env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogPretty)
	if envErr != nil {
		log.Info().Msg("no .env file found")
	}

	// 1. Input gate: Redis when configured and reachable, otherwise in-process
	var gate game.InputGate = game.NewMemoryGate(cfg.ClickPause)
	if cfg.RedisEnabled() {
		if client := redis.NewClient(context.Background(), cfg.RedisURL, cfg.RedisPassword); client != nil {
			defer client.Close()
			gate = redis.NewGate(client, cfg.ClickPause)
		}
	}

	// 2. Session owns the single game
	session := game.NewSession(game.Options{
		Rows:         cfg.BoardRows,
		Columns:      cfg.BoardColumns,
		Player1Color: cfg.Player1Color,
		Player2Color: cfg.Player2Color,
		Gate:         gate,
	})

	// 3. Handlers
	gameHandler := transportHttp.NewGameHandler(session)
	wsHandler := websocket.NewHandler(websocket.NewConnectionManager(), session, cfg.AllowedOrigins)
	defer wsHandler.Close()

	// 4. Router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	gameHandler.Register(router)
	router.GET("/ws", wsHandler.HandleWebSocket)

	// Serve the browser renderer if it was built next to the binary
	if _, err := os.Stat(cfg.StaticDir); err == nil {
		index := filepath.Join(cfg.StaticDir, "index.html")
		router.Static("/assets", filepath.Join(cfg.StaticDir, "assets"))
		router.GET("/", func(c *gin.Context) {
			c.File(index)
		})
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.File(index)
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Int("rows", cfg.BoardRows).Int("columns", cfg.BoardColumns).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
		log.Info().Msg("server is shutting down")
	case err := <-serverErr:
		// return instead of exiting so deferred closes still run
		log.Error().Err(err).Msg("server error")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exited gracefully")
}
