package spotify

// Artist is the subset of the Spotify artist object the watcher reads.
type Artist struct {
	Name string `json:"name"`
}

// Album is the subset of the Spotify album object the watcher reads.
type Album struct {
	Name string `json:"name"`
}

// Show describes the podcast an episode belongs to.
type Show struct {
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

// Item represents the playable entity inside a currently-playing response.
// Spotify reports both tracks and podcast episodes here; the Type field
// decides which of the kind-specific fields are populated.
type Item struct {
	Type       string   `json:"type"` // "track" or "episode"
	ID         string   `json:"id"`
	URI        string   `json:"uri"`
	Name       string   `json:"name"`
	DurationMs int      `json:"duration_ms"`
	Popularity int      `json:"popularity"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
	Show       Show     `json:"show"`
}

// CurrentlyPlaying represents the currently playing object from the Spotify API.
// The Item field is a pointer to handle cases where nothing is playing (item is null).
type CurrentlyPlaying struct {
	IsPlaying            bool   `json:"is_playing"`
	ProgressMs           int    `json:"progress_ms"`
	Timestamp            int64  `json:"timestamp"`
	CurrentlyPlayingType string `json:"currently_playing_type"`
	Item                 *Item  `json:"item"`
}
