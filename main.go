package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"aw-watcher-spotify/internal/aw"
	"aw-watcher-spotify/internal/config"
	"aw-watcher-spotify/internal/spotify"
	"aw-watcher-spotify/internal/statusline"
	"aw-watcher-spotify/internal/watcher"
)

const (
	clientName      = "aw-watcher-spotify"
	bucketEventType = "currently-playing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink := aw.NewClient(cfg.AWHost, clientName)
	bucketID := sink.BucketID()
	if err := sink.CreateBucket(ctx, bucketID, bucketEventType); err != nil {
		slog.Error("failed to create heartbeat bucket", "bucket", bucketID, "error", err)
		os.Exit(1)
	}

	authenticate := func(ctx context.Context) (watcher.PlaybackSource, error) {
		return spotify.NewClient(ctx, cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.RefreshToken), nil
	}
	source, err := authenticate(ctx)
	if err != nil {
		slog.Error("failed to establish spotify session", "error", err)
		os.Exit(1)
	}

	status := statusline.New(os.Stdout)
	tracker := watcher.NewTracker(sink, status, bucketID, cfg.PollTime)
	w := watcher.New(source, tracker, authenticate, cfg.PollTime, status)

	slog.Info("watcher started", "bucket", bucketID, "user", cfg.Spotify.Username, "pollTime", cfg.PollTime)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("watcher stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("watcher stopped")
}
