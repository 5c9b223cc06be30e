package watcher

import (
	"context"
	"log/slog"
	"time"

	"aw-watcher-spotify/internal/spotify"
	"aw-watcher-spotify/internal/statusline"
)

// decodeRetryDelay is the short sleep before retrying after a malformed
// response or an unclassified failure.
const decodeRetryDelay = 100 * time.Millisecond

// AuthFunc performs a fresh authentication exchange and returns a new
// playback source. Invoked once at startup (fatal on failure, by the caller)
// and again whenever the session expires mid-run.
type AuthFunc func(ctx context.Context) (PlaybackSource, error)

// Watcher drives the poll loop: fetch, classify failures, hand successful
// results to the tracker, sleep, repeat. Single-threaded by design; the
// remote query, the heartbeat submission and the inter-cycle sleep all block
// the one loop.
type Watcher struct {
	poller       *Poller
	tracker      *Tracker
	authenticate AuthFunc
	pollInterval time.Duration
	status       *statusline.Printer

	// Injection points for tests; default to real time.
	sleep func(ctx context.Context, d time.Duration)
	now   func() time.Time
}

// New creates a Watcher polling the given source every pollTime seconds.
func New(source PlaybackSource, tracker *Tracker, authenticate AuthFunc, pollTime float64, status *statusline.Printer) *Watcher {
	return &Watcher{
		poller:       NewPoller(source),
		tracker:      tracker,
		authenticate: authenticate,
		pollInterval: time.Duration(pollTime * float64(time.Second)),
		status:       status,
		sleep:        sleepContext,
		now:          time.Now,
	}
}

// Run polls until ctx is cancelled. No remote-side anomaly ever escapes the
// loop: every failure is classified and recovered, since the process runs
// unattended indefinitely.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		item, err := w.poller.Poll(ctx)
		if err != nil {
			w.recover(ctx, err)
			continue
		}

		w.tracker.Observe(ctx, item, w.now().UTC())
		w.sleep(ctx, w.pollInterval)
	}
}

// recover applies the retry strategy for a classified poll failure.
func (w *Watcher) recover(ctx context.Context, err error) {
	switch spotify.ClassifyError(err) {
	case spotify.FailureSessionExpired:
		// Discard the expired session and retry immediately, no sleep.
		w.status.Printlnf("Token expired, trying to refresh")
		source, authErr := w.authenticate(ctx)
		if authErr != nil {
			slog.Error("failed to rebuild spotify session", "error", authErr)
			w.sleep(ctx, w.pollInterval)
			return
		}
		w.poller.source = source
	case spotify.FailureNetwork:
		slog.Error("connection error while fetching playback, check your internet connection", "error", err)
		w.sleep(ctx, w.pollInterval)
	case spotify.FailureDecode:
		slog.Error("failed to decode playback response", "error", err)
		w.sleep(ctx, decodeRetryDelay)
	default:
		slog.Error("unexpected error while fetching playback", "error", err)
		w.sleep(ctx, decodeRetryDelay)
	}
}

// sleepContext sleeps for d or until ctx is cancelled, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
