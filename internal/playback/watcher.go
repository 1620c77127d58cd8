package playback

import (
	"context"
	"log/slog"
	"time"

	"github.com/roach88/phrasekit/internal/host"
)

const (
	// DefaultEndMarkerSeconds is where the end marker goes when no loop is
	// active. Projects longer than an hour need a larger value.
	DefaultEndMarkerSeconds = 3600.0

	// DefaultPollInterval is how often a LoopWatcher checks the transport.
	DefaultPollInterval = 50 * time.Millisecond
)

// ResetMarker clears the loop region on pb while keeping the playhead where
// it is. The host jumps to 0 when the region is reset, so the playhead is
// restored afterwards.
func ResetMarker(pb host.Playback, endMarkerSeconds float64) {
	playhead := pb.Playhead()
	pb.Pause()
	pb.Loop(0, endMarkerSeconds)
	pb.Pause()
	pb.Seek(playhead)
}

// LoopWatcher waits for a loop to end and then resets the marker. Leaving a
// loop region in place blocks playback past its end, so the reset runs on
// every exit path including cancellation.
type LoopWatcher struct {
	Playback         host.Playback
	Clock            host.Clock
	Interval         time.Duration
	EndMarkerSeconds float64
}

// Wait polls the transport every Interval until it stops looping or ctx is
// done. It returns ctx.Err() on cancellation and nil otherwise.
func (w *LoopWatcher) Wait(ctx context.Context) error {
	defer ResetMarker(w.Playback, w.EndMarkerSeconds)

	interval := w.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	polls := 0
	for {
		select {
		case <-ctx.Done():
			slog.Debug("loop watcher cancelled", "polls", polls)
			return ctx.Err()
		case <-w.Clock.After(interval):
		}
		polls++
		if status := w.Playback.Status(); status != host.StatusLooping {
			slog.Debug("loop watcher stopped", "status", status, "polls", polls)
			return nil
		}
	}
}

// Repeater starts loops on the transport and watches them.
type Repeater struct {
	Playback         host.Playback
	Clock            host.Clock
	Interval         time.Duration
	EndMarkerSeconds float64
}

// NewRepeater creates a Repeater on the system clock with default timings.
func NewRepeater(pb host.Playback) *Repeater {
	return &Repeater{
		Playback:         pb,
		Clock:            host.SystemClock{},
		Interval:         DefaultPollInterval,
		EndMarkerSeconds: DefaultEndMarkerSeconds,
	}
}

// Stop resets the marker when the transport is playing or looping and
// reports whether it did.
func (r *Repeater) Stop() bool {
	if r.Playback.Status() == host.StatusStopped {
		return false
	}
	ResetMarker(r.Playback, r.endMarker())
	return true
}

// Start resets any active region and loops plan. Seeking to the end first
// keeps the editor from scrolling twice.
func (r *Repeater) Start(plan Plan) {
	r.Stop()
	r.Playback.Seek(plan.EndSeconds)
	r.Playback.Seek(plan.StartSeconds)
	r.Playback.Loop(plan.StartSeconds, plan.EndSeconds)
	slog.Debug("loop started", "start", plan.StartSeconds, "end", plan.EndSeconds, "notes", len(plan.Notes))
}

// Run starts plan and blocks until the loop ends or ctx is done.
func (r *Repeater) Run(ctx context.Context, plan Plan) error {
	r.Start(plan)
	w := &LoopWatcher{
		Playback:         r.Playback,
		Clock:            r.Clock,
		Interval:         r.Interval,
		EndMarkerSeconds: r.endMarker(),
	}
	return w.Wait(ctx)
}

// Toggle stops an active loop, or starts and watches plan when the
// transport is stopped. ok reports whether plan was usable.
func (r *Repeater) Toggle(ctx context.Context, plan Plan, ok bool) error {
	if r.Stop() || !ok {
		return nil
	}
	return r.Run(ctx, plan)
}

func (r *Repeater) endMarker() float64 {
	if r.EndMarkerSeconds <= 0 {
		return DefaultEndMarkerSeconds
	}
	return r.EndMarkerSeconds
}
