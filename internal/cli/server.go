package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"classquiz-service/internal/app"
	"classquiz-service/internal/config"
	"classquiz-service/internal/game"
	"classquiz-service/internal/infra/memory"
	pgcontent "classquiz-service/internal/infra/postgres"
	redissession "classquiz-service/internal/infra/redis"
	"classquiz-service/internal/sound"
	transport "classquiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game server",
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
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 24*time.Hour)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.ContentLoader = memory.NewStaticContentLoader(memory.SampleContent())
	if pool != nil {
		loader = pgcontent.NewContentLoader(pool)
	}
	contentTTL := config.TTLDuration(cfg.Content.TTL, 10*time.Minute)
	contentRepo := memory.NewContentRepository(loader, contentTTL)

	var store app.SessionStore = memory.NewSessionStore()
	if redisClient != nil {
		store = redissession.NewSessionStore(redisClient, redisTTL)
	}

	var recorder app.MatchRecorder
	if pool != nil {
		recorder = pgcontent.NewMatchRecorder(pool)
	}

	service := app.NewGameService(app.Params{
		Store:    store,
		Content:  contentRepo,
		Recorder: recorder,
		Tuning:   tuningFromConfig(cfg),
		Sound:    sound.NewLogEngine(),
	})
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
		log.Printf("starting game service on :%s", finalPort)
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

	service.ExitMatch()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// tuningFromConfig overlays configured values on the defaults, so a partial
// config file keeps standard scoring for everything it does not mention.
func tuningFromConfig(cfg config.Config) game.Tuning {
	t := game.DefaultTuning()
	g := cfg.Game
	if g.BasePoints > 0 {
		t.BasePoints = g.BasePoints
	}
	if g.SpeedBonus > 0 {
		t.SpeedBonus = g.SpeedBonus
	}
	if g.SpeedThresholdSeconds > 0 {
		t.SpeedThresholdSeconds = g.SpeedThresholdSeconds
	}
	if g.StealPoints > 0 {
		t.StealPoints = g.StealPoints
	}
	if g.StealWindowSeconds > 0 {
		t.StealWindowSeconds = g.StealWindowSeconds
	}
	if g.WrongPenalty > 0 {
		t.WrongPenalty = g.WrongPenalty
	}
	if g.ShowdownRounds > 0 {
		t.ShowdownRounds = g.ShowdownRounds
	}
	return t
}
