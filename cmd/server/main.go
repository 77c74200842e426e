package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/mmuslimabdulj/goat-wolf/internal/config"
	httpHandler "github.com/mmuslimabdulj/goat-wolf/internal/delivery/http"
	"github.com/mmuslimabdulj/goat-wolf/internal/delivery/ws"
	"github.com/mmuslimabdulj/goat-wolf/internal/logger"
	"github.com/mmuslimabdulj/goat-wolf/internal/middleware"
)

func main() {
	// Load .env file (ignore error if not exists, e.g. in production)
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()
	logger.Setup(cfg.LogLevel)

	roomManager := ws.NewRoomManager(cfg.GameConfig(), cfg.MaxMessageSize, cfg.MaxHistorySize)
	handler := httpHandler.NewHandler(roomManager, cfg)

	apiLimiter := middleware.NewIPRateLimiter(cfg.RateLimitAPI, int(cfg.RateLimitAPI)*2)
	wsLimiter := middleware.NewIPRateLimiter(cfg.RateLimitWS, int(cfg.RateLimitWS)*2)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", middleware.RateLimitFunc(wsLimiter, handler.HandleWebSocket))
	mux.HandleFunc("/api/room/create", middleware.RateLimitFunc(apiLimiter, handler.HandleCreateRoom))
	mux.HandleFunc("/api/room/join", middleware.RateLimitFunc(apiLimiter, handler.HandleJoinRoom))
	mux.HandleFunc("/api/health", handler.HandleHealth)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.SecurityHeaders(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("werewolf server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
