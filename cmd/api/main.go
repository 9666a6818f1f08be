package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"anidex.org/internal/auth"
	"anidex.org/internal/catalog"
	"anidex.org/internal/config"
	"anidex.org/internal/httpapi"
	"anidex.org/internal/media"
	"anidex.org/internal/migrate"
	"anidex.org/internal/obs"
	"anidex.org/internal/store/pg"
)

var version = "0.3.1"

func main() {
	configPath := flag.String("config", os.Getenv("ANIDEX_CONFIG"), "Path to YAML config")
	flag.Parse()

	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	obs.Init()
	obs.InitBuildInfo(version, os.Getenv("ANIDEX_COMMIT"))

	store, err := pg.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrate.NewManager(store.DB(), "ops/migrations/sql").Up(ctx); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	authSvc, err := auth.NewService(store.Users(), cfg.JWTSecret, cfg.AdminMasterKey)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	var mediaOpts []media.Option
	if cfg.Media.ShareBaseURL != "" && cfg.Media.WatchBaseURL != "" {
		mediaOpts = append(mediaOpts, media.WithBases(cfg.Media.ShareBaseURL, cfg.Media.WatchBaseURL))
	}
	resolver := media.NewClient(mediaOpts...)

	api := httpapi.New(
		authSvc,
		catalog.NewSeriesService(store.Series()),
		catalog.NewSeasonService(store.Seasons()),
		catalog.NewSourceService(store.Sources()),
		catalog.NewEpisodeService(store.Episodes(), resolver),
		httpapi.ReadyProbe{DB: store.DB()},
		version,
	)

	handler := httpapi.RateLimit(api.Handler(), 50, 25)
	handler = httpapi.MaxBodyBytes(handler, 1<<20)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting anidex-api %s on %s", version, srv.Addr)
	obs.SetReady(true)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")
	obs.SetReady(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Println("Stopped")
}
