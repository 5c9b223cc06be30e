package watcher

import (
	"context"
	"log/slog"

	api "github.com/zmb3/spotify/v2"

	"aw-watcher-spotify/internal/spotify"
)

// PlaybackSource is the remote capability the poller queries once per cycle.
type PlaybackSource interface {
	CurrentlyPlaying(ctx context.Context) (*spotify.CurrentlyPlaying, error)
	AudioFeatures(ctx context.Context, id string) (*api.AudioFeatures, error)
}

// Poller produces, once per cycle, either an enriched Item or nil for
// "nothing playing", or fails with an error the caller classifies.
type Poller struct {
	source PlaybackSource
}

// NewPoller creates a new Poller.
func NewPoller(source PlaybackSource) *Poller {
	return &Poller{source: source}
}

// Poll performs one cycle's query. A paused player and an empty response are
// equivalent: both return a nil Item. The audio-features lookup is
// best-effort; its failure never fails the poll, since the primary playback
// query already carried everything essential.
func (p *Poller) Poll(ctx context.Context) (*Item, error) {
	playing, err := p.source.CurrentlyPlaying(ctx)
	if err != nil {
		return nil, err
	}
	if playing == nil || !playing.IsPlaying || playing.Item == nil {
		return nil, nil
	}

	item, err := itemFromPlayback(playing)
	if err != nil {
		return nil, err
	}

	if id := playing.Item.ID; id != "" {
		features, err := p.source.AudioFeatures(ctx, id)
		if err != nil {
			slog.Debug("audio feature lookup failed", "id", id, "error", err)
		} else {
			item.Features = features
		}
	}

	return &item, nil
}
