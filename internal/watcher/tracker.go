package watcher

import (
	"context"
	"log/slog"
	"time"

	"aw-watcher-spotify/internal/aw"
	"aw-watcher-spotify/internal/statusline"
)

// HeartbeatSink is the narrow "submit heartbeat" capability the tracker
// reports to. Adjacent heartbeats within pulsetime seconds of each other are
// merged by the sink into one continuous span.
type HeartbeatSink interface {
	Heartbeat(ctx context.Context, bucketID string, event aw.Event, pulsetime float64, queued bool) error
}

// Tracker compares each cycle's poll result against the previously observed
// item, logs track boundaries, and emits at most one heartbeat per cycle.
type Tracker struct {
	sink      HeartbeatSink
	status    *statusline.Printer
	bucketID  string
	pulsetime float64

	// last is the most recently observed playing item. It is owned
	// exclusively by the single poll loop; no locking.
	last *Item
}

// NewTracker creates a Tracker reporting into the given bucket. The
// pulsetime sent with every heartbeat is pollTime plus one second: the pad
// keeps scheduling jitter between cycles from fragmenting one continuous
// listen into multiple spans in the sink's merge logic.
func NewTracker(sink HeartbeatSink, status *statusline.Printer, bucketID string, pollTime float64) *Tracker {
	return &Tracker{
		sink:      sink,
		status:    status,
		bucketID:  bucketID,
		pulsetime: pollTime + 1,
	}
}

// Observe processes one cycle's poll result. current is nil when nothing is
// playing. A failed heartbeat submission is logged and dropped, never
// retried within the cycle; the next cycle's submission supersedes it. The
// remembered item is updated unconditionally, whichever branch fired.
func (t *Tracker) Observe(ctx context.Context, current *Item, now time.Time) {
	// A new line when a song ends gives a short history directly in the log.
	// Elapsed time comes from the previous poll's reported progress, so it
	// undercounts by up to one poll interval.
	if t.last != nil && (current == nil || current.URI != t.last.URI) {
		t.status.Printlnf("Track ended (%s): %s - %s (%s)",
			formatElapsed(t.last.ProgressMs), t.last.Title, t.last.Artist, t.last.Album)
	}

	if current != nil {
		t.status.Updatef("Current track (%s): %s - %s (%s)",
			formatElapsed(current.ProgressMs), current.Title, current.Artist, current.Album)

		event := aw.Event{Timestamp: now, Data: current.EventData()}
		if err := t.sink.Heartbeat(ctx, t.bucketID, event, t.pulsetime, true); err != nil {
			slog.Error("failed to submit heartbeat", "bucket", t.bucketID, "error", err)
		}
	} else {
		t.status.Updatef("Waiting for track to start playing...")
	}

	t.last = current
}
