package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"vocab-progress-service/internal/app"
	"vocab-progress-service/internal/config"
	"vocab-progress-service/internal/content"
	"vocab-progress-service/internal/domain"
	"vocab-progress-service/internal/infra/memory"
	pgstore "vocab-progress-service/internal/infra/postgres"
	redisstore "vocab-progress-service/internal/infra/redis"
	transport "vocab-progress-service/internal/transport/http"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the progress engine server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	wordsTTL := config.TTLDuration(cfg.Words.TTL, 10*time.Minute)
	catalog := buildCatalog(pool, redisClient, wordsTTL)
	questions := content.NewBuilder(catalog)

	var accounts app.AccountRepository
	var ledger app.ProgressRepository
	var mistakes app.MistakeRepository
	if pool != nil {
		accounts = pgstore.NewAccountStore(pool)
		ledger = pgstore.NewProgressLedger(pool)
		mistakes = pgstore.NewMistakeLog(pool)
	} else {
		accounts = memory.NewAccountStore()
		ledger = memory.NewProgressLedger()
		mistakes = memory.NewMistakeLog()
	}

	var sessions app.SessionStore
	if redisClient != nil {
		sessions = redisstore.NewSessionStore(redisClient, redisTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	service := app.NewProgressService(accounts, ledger, mistakes, sessions, questions, engineSettings(cfg))

	if redisClient != nil {
		mirror := redisstore.NewLeaderboard(redisClient)
		if rows, err := accounts.Top(ctx, 100); err == nil {
			if err := mirror.Seed(ctx, rows); err != nil {
				log.Printf("leaderboard seed failed: %v", err)
			}
		}
		service.WithMirror(mirror)
	}

	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting progress service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildCatalog picks the word source: postgres behind a cache when
// configured, the bundled pool otherwise.
func buildCatalog(pool *pgxpool.Pool, redisClient *redis.Client, ttl time.Duration) content.WordCatalog {
	if pool != nil {
		loader := pgstore.NewWordCatalog(pool)
		if redisClient != nil {
			return redisstore.NewWordCache(redisClient, loader, ttl)
		}
		return memory.NewWordCache(loader, ttl)
	}
	static := memory.NewStaticWordCatalog(content.BuiltinWords())
	if redisClient != nil {
		return redisstore.NewWordCache(redisClient, static, ttl)
	}
	return static
}

func engineSettings(cfg config.Config) app.Settings {
	settings := app.DefaultSettings()
	if cfg.Engine.XPPerCorrect > 0 {
		settings.XPPerCorrect = cfg.Engine.XPPerCorrect
	}
	if cfg.Engine.LeaderboardSize > 0 {
		settings.LeaderboardSize = cfg.Engine.LeaderboardSize
	}
	if len(cfg.Engine.Levels) > 0 {
		levels := make(domain.Levels, 0, len(cfg.Engine.Levels))
		for _, l := range cfg.Engine.Levels {
			levels = append(levels, domain.LevelThreshold{MinXP: l.MinXP, Label: l.Label})
		}
		settings.Levels = levels.Normalize()
	}
	return settings
}
