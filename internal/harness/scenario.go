package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/phrasekit/internal/score"
)

// Step operations understood by Run.
const (
	OpAtOrAfter = "at_or_after"
	OpPrevious  = "previous"
	OpNext      = "next"
	OpNearest   = "nearest"
	OpPhrase    = "phrase"
	OpLoopRange = "loop_range"
)

var knownOps = map[string]bool{
	OpAtOrAfter: true,
	OpPrevious:  true,
	OpNext:      true,
	OpNearest:   true,
	OpPhrase:    true,
	OpLoopRange: true,
}

// Scenario is a timeline query script run against an inline project.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Project is the document every step runs against.
	Project score.Document `yaml:"project"`

	// Track selects the track queried by the steps.
	Track int `yaml:"track,omitempty"`

	Steps []Step `yaml:"steps"`
}

// Step is one query and the result it must produce.
type Step struct {
	Op string `yaml:"op"`

	// Position is the query position in absolute blicks. For loop_range it
	// is the playhead.
	Position int64 `yaml:"position"`

	// Ref is the track reference index used by at_or_after.
	Ref int `yaml:"ref,omitempty"`

	// Mode is the nearest search mode: both, before or after.
	Mode string `yaml:"mode,omitempty"`

	// Next selects the phrase after the playhead for loop_range.
	Next bool `yaml:"next,omitempty"`

	// Padding overrides the loop padding. Omitted means none.
	Padding *LoopPadding `yaml:"padding,omitempty"`

	// Exclude keeps the loop clear of surrounding notes.
	Exclude bool `yaml:"exclude,omitempty"`

	Expect *Expect `yaml:"expect,omitempty"`
}

// LoopPadding is loop padding in beats and seconds.
type LoopPadding struct {
	BeforeBeats   float64 `yaml:"before_beats,omitempty"`
	AfterBeats    float64 `yaml:"after_beats,omitempty"`
	BeforeSeconds float64 `yaml:"before_seconds,omitempty"`
	AfterSeconds  float64 `yaml:"after_seconds,omitempty"`
}

// Expect is the expected outcome of a step. Unset fields are not checked.
type Expect struct {
	Found  *bool   `yaml:"found,omitempty"`
	Onsets []int64 `yaml:"onsets,omitempty,flow"`
	Start  *int64  `yaml:"start,omitempty"`
	End    *int64  `yaml:"end,omitempty"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario, rejecting unknown fields.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Project.Tracks) == 0 {
		return fmt.Errorf("project must have at least one track")
	}
	if s.Track < 0 || s.Track >= len(s.Project.Tracks) {
		return fmt.Errorf("track %d out of range", s.Track)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	refs := len(s.Project.Tracks[s.Track].Refs)
	for i, step := range s.Steps {
		if !knownOps[step.Op] {
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if step.Op == OpAtOrAfter && (step.Ref < 0 || step.Ref >= refs) {
			return fmt.Errorf("steps[%d]: ref %d out of range", i, step.Ref)
		}
		if step.Mode != "" && step.Op != OpNearest {
			return fmt.Errorf("steps[%d]: mode only applies to %s", i, OpNearest)
		}
		if step.Op != OpLoopRange && (step.Next || step.Padding != nil || step.Exclude) {
			return fmt.Errorf("steps[%d]: loop options only apply to %s", i, OpLoopRange)
		}
	}
	return nil
}
