package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/calvinyu/guessme/backend/internal/config"
	"github.com/calvinyu/guessme/backend/internal/handler"
	gameservice "github.com/calvinyu/guessme/backend/internal/service/game"
	"github.com/calvinyu/guessme/backend/internal/service/oracle"
	"github.com/calvinyu/guessme/backend/internal/store/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Connect the session store
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	pingErr := redisClient.Ping(pingCtx).Err()
	cancel()
	if pingErr != nil {
		log.Fatalf("failed to reach redis at %s: %v", cfg.Redis.URL, pingErr)
	}
	store := session.NewRedisStore(redisClient, cfg.Game.SessionTTL)

	// Initialize the oracle. The game cannot run without it, so a
	// missing model configuration is fatal rather than degraded.
	chatModel, err := cfg.AI.NewChatModel(ctx)
	if err != nil {
		log.Fatalf("failed to initialize chat model: %v", err)
	}

	oracleSvc, err := oracle.NewService(ctx, chatModel, cfg.Game.Mode)
	if err != nil {
		log.Fatalf("failed to initialize oracle service: %v", err)
	}

	gameSvc := gameservice.NewService(store, oracleSvc, cfg.Game.Mode)
	log.Printf("game mode: %s (turn ceiling %d)", cfg.Game.Mode.Name(), cfg.Game.Mode.TurnCeiling())

	router := handler.NewRouter(gameSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("GuessMe backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
