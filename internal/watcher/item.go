package watcher

import (
	"fmt"

	api "github.com/zmb3/spotify/v2"

	"aw-watcher-spotify/internal/spotify"
)

// Kind distinguishes the two playable entity types Spotify can report.
type Kind int

const (
	KindTrack Kind = iota
	KindEpisode
)

// Item is one observed playback state, enriched with the attributes the
// heartbeat payload carries. It is built once per poll cycle and passed by
// value; the tracker keeps the previous cycle's Item as its remembered state.
type Item struct {
	Kind  Kind
	URI   string
	Title string
	// Artist holds the performer for tracks and the show publisher for
	// episodes; Album holds the album name or the show name respectively.
	Artist string
	Album  string
	// Popularity is only meaningful for tracks; -1 when Spotify omits it.
	// Episodes never carry one.
	Popularity int
	ProgressMs int
	// Features is best-effort: nil whenever the audio-features lookup
	// failed or Spotify has no analysis for the item.
	Features *api.AudioFeatures
}

// itemFromPlayback derives the reportable attributes from a raw
// currently-playing response. The caller has already established that
// something is playing (playing.Item is non-nil).
func itemFromPlayback(playing *spotify.CurrentlyPlaying) (Item, error) {
	raw := playing.Item

	item := Item{
		URI:        raw.URI,
		Title:      raw.Name,
		Popularity: -1,
		ProgressMs: playing.ProgressMs,
	}

	switch raw.Type {
	case "track":
		item.Kind = KindTrack
		if len(raw.Artists) > 0 {
			item.Artist = raw.Artists[0].Name
		}
		item.Album = raw.Album.Name
		if raw.Popularity != 0 {
			item.Popularity = raw.Popularity
		}
	case "episode":
		item.Kind = KindEpisode
		item.Artist = raw.Show.Publisher
		item.Album = raw.Show.Name
	default:
		return Item{}, fmt.Errorf("unsupported playback item type %q", raw.Type)
	}

	return item, nil
}

// EventData builds the heartbeat payload for the item. Popularity is a
// track-only field; the acoustic attributes are included only when the
// audio-features lookup succeeded.
func (it *Item) EventData() map[string]any {
	data := map[string]any{
		"title":  it.Title,
		"uri":    it.URI,
		"artist": it.Artist,
		"album":  it.Album,
	}
	if it.Kind == KindTrack {
		data["popularity"] = it.Popularity
	}
	if f := it.Features; f != nil {
		data["danceability"] = f.Danceability
		data["energy"] = f.Energy
		data["key"] = f.Key
		data["loudness"] = f.Loudness
		data["mode"] = f.Mode
		data["speechiness"] = f.Speechiness
		data["acousticness"] = f.Acousticness
		data["instrumentalness"] = f.Instrumentalness
		data["liveness"] = f.Liveness
		data["valence"] = f.Valence
		data["tempo"] = f.Tempo
		data["duration_ms"] = f.Duration
		data["time_signature"] = f.TimeSignature
	}
	return data
}

// formatElapsed renders a playback position as M:SS, seconds truncated.
func formatElapsed(progressMs int) string {
	secs := progressMs / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
