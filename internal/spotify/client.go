package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	api "github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

const (
	tokenURL            = "https://accounts.spotify.com/api/token"
	currentlyPlayingURL = "https://api.spotify.com/v1/me/player/currently-playing?additional_types=episode"
)

// Client wraps the two Spotify Web API calls the watcher needs: the
// currently-playing lookup and the audio-features lookup.
type Client struct {
	httpClient *http.Client
	api        *api.Client
	playingURL string
}

// NewClient creates a new Spotify API client using the refresh token flow.
// Token refreshes are handled transparently by the oauth2 TokenSource; an
// expired or revoked refresh token surfaces as ErrSessionExpired from the
// calls below, at which point the caller is expected to discard this client
// and build a fresh one.
func NewClient(ctx context.Context, clientID, clientSecret, refreshToken string) *Client {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL: tokenURL,
		},
	}

	token := &oauth2.Token{
		RefreshToken: refreshToken,
	}

	httpClient := oauth2.NewClient(ctx, conf.TokenSource(ctx, token))

	return &Client{
		httpClient: httpClient,
		api:        api.New(httpClient),
		playingURL: currentlyPlayingURL,
	}
}

// CurrentlyPlaying fetches the user's current playback state. The request
// asks for episodes as an additional type, so podcast playback decodes into
// the same response shape as tracks.
//
// The call is hand-rolled rather than delegated to the zmb3 client because
// the library's currently-playing type cannot carry episode items.
func (c *Client) CurrentlyPlaying(ctx context.Context) (*CurrentlyPlaying, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.playingURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close spotify api response body", "error", err)
		}
	}()

	switch {
	// When nothing is playing, Spotify returns 204 No Content.
	// We normalize this to a consistent struct response for the caller.
	case resp.StatusCode == http.StatusNoContent:
		return &CurrentlyPlaying{IsPlaying: false, Item: nil}, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: currently-playing returned status %d", ErrSessionExpired, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("currently-playing returned unexpected status %d", resp.StatusCode)
	}

	var currentlyPlaying CurrentlyPlaying
	if err := json.NewDecoder(resp.Body).Decode(&currentlyPlaying); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &currentlyPlaying, nil
}

// AudioFeatures fetches the acoustic attributes for a single track ID.
// A nil result with nil error means Spotify has no analysis for the track.
func (c *Client) AudioFeatures(ctx context.Context, id string) (*api.AudioFeatures, error) {
	features, err := c.api.GetAudioFeatures(ctx, api.ID(id))
	if err != nil {
		return nil, err
	}
	if len(features) == 0 || features[0] == nil {
		return nil, nil
	}
	return features[0], nil
}
