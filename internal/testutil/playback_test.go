package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/phrasekit/internal/host"
)

func TestFakePlayback_RecordsCalls(t *testing.T) {
	pb := NewFakePlayback(2.5)

	pb.Pause()
	pb.Loop(1, 3)
	assert.Equal(t, 1.0, pb.Playhead(), "loop jumps to the start")
	pb.Seek(2.5)

	assert.Equal(t, []string{"pause", "loop(1,3)", "seek(2.5)"}, pb.Calls())
	assert.Equal(t, 2.5, pb.Playhead())
}

func TestFakePlayback_StatusScript(t *testing.T) {
	pb := NewFakePlayback(0, host.StatusLooping, host.StatusLooping, host.StatusStopped)

	assert.Equal(t, host.StatusLooping, pb.Status())
	assert.Equal(t, host.StatusLooping, pb.Status())
	assert.Equal(t, host.StatusStopped, pb.Status())
	assert.Equal(t, host.StatusStopped, pb.Status(), "last entry repeats")
}

func TestFakePlayback_EmptyScriptIsStopped(t *testing.T) {
	assert.Equal(t, host.StatusStopped, NewFakePlayback(0).Status())
}
