package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/technai/internal/buildinfo"
	"github.com/dmitrijs2005/technai/internal/client/cli"
	"github.com/dmitrijs2005/technai/internal/client/client"
	"github.com/dmitrijs2005/technai/internal/client/config"
	"github.com/dmitrijs2005/technai/internal/client/services"
	"github.com/dmitrijs2005/technai/internal/client/session"
	"github.com/dmitrijs2005/technai/internal/client/storage"
	"github.com/dmitrijs2005/technai/internal/logging"
	"github.com/dmitrijs2005/technai/internal/validation"
	"golang.org/x/time/rate"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	log := logging.New(cfg.LogLevel, os.Stderr)

	db, err := storage.InitDatabase(ctx, cfg.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := session.NewStore(db, log)
	go func() {
		if err := store.Init(ctx); err != nil {
			log.Warn(ctx, "could not restore session", "error", err)
		}
	}()

	opts := []client.Option{
		client.WithMessages(client.NewMessages(cfg.Locale)),
		client.WithLogger(log),
	}
	if cfg.RequestsPerSecond > 0 {
		opts = append(opts, client.WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst)))
	}
	gw := client.NewGateway(cfg.APIBaseURL, store, opts...)
	api := client.NewHTTPClient(gw)

	auth := services.NewAuthService(api, store, validation.New())
	app := cli.NewApp(cfg, store, auth, api, log, os.Stdin, os.Stdout)
	gw.OnSessionExpired(app.SessionExpired)

	app.Run(ctx)
}
