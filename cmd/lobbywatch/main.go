package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"lobbywatch/internal/adapters/directory"
	"lobbywatch/internal/adapters/discord"
	"lobbywatch/internal/adapters/status"
	"lobbywatch/internal/adapters/stream"
	"lobbywatch/internal/app"
	"lobbywatch/internal/config"
)

func main() {
	// Initialize zerolog global logger early so config.Load can use it.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Mode == "release" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ds, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create discord session")
	}
	if err := ds.Open(); err != nil {
		log.Fatal().Err(err).Msg("failed to open discord gateway")
	}
	defer ds.Close()

	surfaces := make([]string, len(cfg.Channels))
	copy(surfaces, cfg.Channels)

	dir := directory.New(cfg.APIBaseURL, cfg.RequestTimeout)
	sink := discord.New(ds, surfaces, cfg.SiteBaseURL)

	view := app.NewViewStore()
	health := &app.StreamHealth{}
	orch := &app.Orchestrator{
		View:    view,
		Dir:     dir,
		Sink:    sink,
		Health:  health,
		Timeout: cfg.RequestTimeout,
	}

	sub := stream.New(cfg.StreamURL, orch)
	sup := &app.Supervisor{
		Orch:     orch,
		Stream:   sub,
		Interval: cfg.ResyncInterval,
	}
	poller := &app.Poller{
		Dir:      dir,
		Sink:     sink,
		Interval: cfg.CountInterval,
		Timeout:  cfg.RequestTimeout,
	}

	sup.Bootstrap(ctx)
	go sup.Run(ctx)
	go poller.Run(ctx)

	router := status.SetupRouter(cfg.Mode, view, health)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.StatusPort),
		Handler: router,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("status server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("status server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("status server shutdown failed")
	}
}
