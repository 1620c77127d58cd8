package testutil

import (
	"fmt"
	"sync"

	"github.com/roach88/phrasekit/internal/host"
)

// FakePlayback records every transport call as a string such as
// "seek(1.5)" or "loop(0,3600)".
//
// Status answers come from a script: each Status call consumes the next
// entry, and the last entry repeats once the script is exhausted. An empty
// script reports StatusStopped.
type FakePlayback struct {
	mu       sync.Mutex
	playhead float64
	script   []host.Status
	calls    []string
}

var _ host.Playback = (*FakePlayback)(nil)

// NewFakePlayback creates a transport at playhead answering status from
// script.
func NewFakePlayback(playhead float64, script ...host.Status) *FakePlayback {
	return &FakePlayback{playhead: playhead, script: script}
}

func (p *FakePlayback) Playhead() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playhead
}

func (p *FakePlayback) Seek(seconds float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playhead = seconds
	p.calls = append(p.calls, fmt.Sprintf("seek(%g)", seconds))
}

func (p *FakePlayback) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "pause")
}

// Loop jumps the playhead to start like the host does.
func (p *FakePlayback) Loop(start, end float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playhead = start
	p.calls = append(p.calls, fmt.Sprintf("loop(%g,%g)", start, end))
}

func (p *FakePlayback) Status() host.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch len(p.script) {
	case 0:
		return host.StatusStopped
	case 1:
		return p.script[0]
	}
	s := p.script[0]
	p.script = p.script[1:]
	return s
}

// Calls returns a copy of the recorded transport calls.
func (p *FakePlayback) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}
