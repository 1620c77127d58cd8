// Package config loads the tool configuration from CUE.
//
// The schema in schema.cue is embedded and unified with the user's file, so
// defaults, ranges and the closed set of field names are all enforced by
// CUE. Decoding happens only after the unified value validates concretely.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/phrasekit/internal/automation"
	"github.com/roach88/phrasekit/internal/edit"
	"github.com/roach88/phrasekit/internal/host"
	"github.com/roach88/phrasekit/internal/playback"
	"github.com/roach88/phrasekit/internal/score"
)

//go:embed schema.cue
var schema string

// Config is the decoded tool configuration.
type Config struct {
	Playback PlaybackConfig `json:"playback"`
	Pack     PackConfig     `json:"pack"`
	Edit     EditConfig     `json:"edit"`
}

// PlaybackConfig controls loop ranges and the loop watcher.
type PlaybackConfig struct {
	PaddingBeforeBeats   float64 `json:"padding_before_beats"`
	PaddingAfterBeats    float64 `json:"padding_after_beats"`
	PaddingBeforeSeconds float64 `json:"padding_before_seconds"`
	PaddingAfterSeconds  float64 `json:"padding_after_seconds"`
	ExcludeSurrounding   bool    `json:"exclude_surrounding"`
	NeighborBias         float64 `json:"neighbor_bias"`
	EndMarkerSeconds     float64 `json:"end_marker_seconds"`
	PollIntervalMS       int     `json:"poll_interval_ms"`
}

// PackConfig controls automation packing.
type PackConfig struct {
	PaddingBeforeBeats float64  `json:"padding_before_beats"`
	PaddingAfterBeats  float64  `json:"padding_after_beats"`
	Parameters         []string `json:"parameters"`
}

// EditConfig controls note edits.
type EditConfig struct {
	GridDivisions int `json:"grid_divisions"`
}

// Error is a configuration error with the CUE position when one is known.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Default returns the configuration of an empty file.
func Default() Config {
	cfg, err := Parse("default.cue", nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema: %v", err))
	}
	return cfg
}

// Load reads and validates the CUE file at path. An empty path yields
// Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(path, data)
}

// Parse validates CUE source against the schema and decodes it. filename
// is used in error positions.
func Parse(filename string, src []byte) (Config, error) {
	ctx := cuecontext.New()

	def := ctx.CompileString(schema, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}

	user := ctx.CompileBytes(src, cue.Filename(filename))
	if err := user.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}

	value := def.Unify(user)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err)
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return Config{}, formatCUEError(err)
	}
	return cfg, nil
}

// formatCUEError keeps the first error and its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &Error{Message: err.Error()}
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &Error{Message: first.Error(), Pos: positions[0]}
	}
	return &Error{Message: first.Error()}
}

// Options converts the playback section.
func (c PlaybackConfig) Options() playback.Options {
	return playback.Options{
		Padding: playback.Padding{
			BeforeBeats:   c.PaddingBeforeBeats,
			AfterBeats:    c.PaddingAfterBeats,
			BeforeSeconds: c.PaddingBeforeSeconds,
			AfterSeconds:  c.PaddingAfterSeconds,
		},
		ExcludeSurrounding: c.ExcludeSurrounding,
		NeighborBias:       c.NeighborBias,
	}
}

// PollInterval is PollIntervalMS as a duration.
func (c PlaybackConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// Repeater creates a playback.Repeater on the system clock that polls every
// PollInterval and parks the end marker at EndMarkerSeconds.
func (c PlaybackConfig) Repeater(pb host.Playback) *playback.Repeater {
	r := playback.NewRepeater(pb)
	r.Interval = c.PollInterval()
	r.EndMarkerSeconds = c.EndMarkerSeconds
	return r
}

// Options converts the pack section.
func (c PackConfig) Options() automation.Options {
	params := make([]host.ParamType, 0, len(c.Parameters))
	for _, p := range c.Parameters {
		params = append(params, host.ParamType(p))
	}
	return automation.Options{
		PaddingBeforeBeats: c.PaddingBeforeBeats,
		PaddingAfterBeats:  c.PaddingAfterBeats,
		Parameters:         params,
	}
}

// Grid returns the snapping grid.
func (c EditConfig) Grid() edit.Grid {
	if c.GridDivisions <= 0 {
		return edit.Grid{}
	}
	return edit.Grid{Step: score.Quarter / host.Blick(c.GridDivisions)}
}
