package watcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	api "github.com/zmb3/spotify/v2"

	"aw-watcher-spotify/internal/spotify"
)

// fakeSource scripts the remote playback capability.
type fakeSource struct {
	playingFn  func(ctx context.Context) (*spotify.CurrentlyPlaying, error)
	featuresFn func(ctx context.Context, id string) (*api.AudioFeatures, error)
}

func (f *fakeSource) CurrentlyPlaying(ctx context.Context) (*spotify.CurrentlyPlaying, error) {
	return f.playingFn(ctx)
}

func (f *fakeSource) AudioFeatures(ctx context.Context, id string) (*api.AudioFeatures, error) {
	if f.featuresFn == nil {
		return nil, nil
	}
	return f.featuresFn(ctx, id)
}

func playingTrack(id, title string, progressMs int) *spotify.CurrentlyPlaying {
	return &spotify.CurrentlyPlaying{
		IsPlaying:  true,
		ProgressMs: progressMs,
		Item: &spotify.Item{
			Type:    "track",
			ID:      id,
			URI:     "spotify:track:" + id,
			Name:    title,
			Artists: []spotify.Artist{{Name: "Artist"}},
			Album:   spotify.Album{Name: "Album"},
		},
	}
}

func TestPollNothingPlaying(t *testing.T) {
	source := &fakeSource{
		playingFn: func(context.Context) (*spotify.CurrentlyPlaying, error) {
			return &spotify.CurrentlyPlaying{IsPlaying: false, Item: nil}, nil
		},
	}

	item, err := NewPoller(source).Poll(context.Background())
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestPollPausedItemEqualsNothingPlaying(t *testing.T) {
	playing := playingTrack("t1", "Song A", 10000)
	playing.IsPlaying = false

	source := &fakeSource{
		playingFn: func(context.Context) (*spotify.CurrentlyPlaying, error) {
			return playing, nil
		},
	}

	item, err := NewPoller(source).Poll(context.Background())
	require.NoError(t, err)
	assert.Nil(t, item, "is_playing=false is treated identically to no item")
}

func TestPollEnrichesWithAudioFeatures(t *testing.T) {
	var lookedUp string
	source := &fakeSource{
		playingFn: func(context.Context) (*spotify.CurrentlyPlaying, error) {
			return playingTrack("t1", "Song A", 10000), nil
		},
		featuresFn: func(_ context.Context, id string) (*api.AudioFeatures, error) {
			lookedUp = id
			return &api.AudioFeatures{Tempo: 128}, nil
		},
	}

	item, err := NewPoller(source).Poll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "t1", lookedUp)
	require.NotNil(t, item.Features)
	assert.Equal(t, float32(128), item.Features.Tempo)
}

func TestPollAbsorbsAudioFeatureFailure(t *testing.T) {
	source := &fakeSource{
		playingFn: func(context.Context) (*spotify.CurrentlyPlaying, error) {
			return playingTrack("t1", "Song A", 10000), nil
		},
		featuresFn: func(context.Context, string) (*api.AudioFeatures, error) {
			return nil, errors.New("analysis unavailable")
		},
	}

	item, err := NewPoller(source).Poll(context.Background())
	require.NoError(t, err, "a failed audio-feature lookup must never fail the poll")
	require.NotNil(t, item)
	assert.Nil(t, item.Features)
	assert.Equal(t, "Song A", item.Title, "essential track data survives the feature failure")
}

func TestPollPropagatesPlaybackError(t *testing.T) {
	source := &fakeSource{
		playingFn: func(context.Context) (*spotify.CurrentlyPlaying, error) {
			return nil, spotify.ErrSessionExpired
		},
	}

	item, err := NewPoller(source).Poll(context.Background())
	assert.Nil(t, item)
	assert.ErrorIs(t, err, spotify.ErrSessionExpired)
}
