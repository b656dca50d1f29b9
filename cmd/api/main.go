package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-negamax/internal/config"
	"github.com/iamasit07/connect4-negamax/internal/repository/redis"
	"github.com/iamasit07/connect4-negamax/internal/service/bot"
	"github.com/iamasit07/connect4-negamax/internal/service/cleanup"
	"github.com/iamasit07/connect4-negamax/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-negamax/internal/transport/http"
	"github.com/iamasit07/connect4-negamax/internal/transport/websocket"
	"github.com/iamasit07/connect4-negamax/pkg/auth"
	"github.com/iamasit07/connect4-negamax/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	sugar := logger.New(cfg.LogLevel)
	defer sugar.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Engine
	evaluator, err := bot.NewEvaluator(cfg.Evaluator)
	if err != nil {
		sugar.Fatalw("Invalid evaluator", "evaluator", cfg.Evaluator, "error", err)
	}
	difficulty, err := bot.ParseDifficulty(cfg.DefaultDifficulty)
	if err != nil {
		sugar.Warnw("Invalid default difficulty, using medium", "difficulty", cfg.DefaultDifficulty)
		difficulty = bot.DefaultDifficulty
	}
	engine := bot.NewEngine(evaluator)

	// 2. Result cache: Redis when configured and reachable, memory otherwise
	cache := newResultCache(ctx, cfg, sugar)
	if closer, ok := cache.(io.Closer); ok {
		defer closer.Close()
	}
	searcher := bot.NewCachedSearcher(engine, evaluator.Name(), cache, sugar)

	// 3. Sessions and background cleanup
	games := game.NewManager(searcher, sugar)
	worker := cleanup.NewWorker(games, cfg.CleanupInterval, cfg.SessionIdleTimeout, sugar)
	workerDone := worker.Start(ctx)

	// 4. Transport
	defaults := game.DefaultOptions()
	defaults.Rows, defaults.Columns, defaults.WinLength = cfg.BoardRows, cfg.BoardColumns, cfg.WinLength

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.GameTokenTTL)
	gameHandler := transportHttp.NewGameHandler(games, tokens, defaults, difficulty, sugar)
	wsHandler := websocket.NewHandler(websocket.NewConnectionManager(), games, tokens, cfg.AllowedOrigins, sugar)
	router := transportHttp.NewRouter(gameHandler, wsHandler, cfg.AllowedOrigins, sugar)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		sugar.Infow("Server starting", "port", cfg.Port, "evaluator", evaluator.Name(),
			"difficulty", difficulty, "board", [3]int{cfg.BoardRows, cfg.BoardColumns, cfg.WinLength})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Server is shutting down...")

	cancel()
	<-workerDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Fatalw("Server forced to shutdown", "error", err)
	}

	sugar.Info("Server exited gracefully")
}

func newResultCache(ctx context.Context, cfg *config.Config, sugar *zap.SugaredLogger) bot.ResultCache {
	if cfg.RedisURL != "" {
		client, err := redis.Connect(ctx, cfg.RedisURL, cfg.RedisPassword, sugar)
		if err == nil {
			return redis.NewSearchCache(client, cfg.SearchCacheTTL)
		}
		sugar.Warnw("Redis unavailable, falling back to the in-memory search cache", "error", err)
	}
	return bot.NewMemoryCache(cfg.SearchCacheSize)
}
