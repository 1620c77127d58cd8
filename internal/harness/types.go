package harness

// TraceEvent is the observed outcome of one step.
type TraceEvent struct {
	Step     int     `json:"step"`
	Op       string  `json:"op"`
	Position int64   `json:"position"`
	Found    bool    `json:"found"`
	Onsets   []int64 `json:"onsets,omitempty"`

	// Start and End are the loop bounds in whole blicks.
	Start *int64 `json:"start,omitempty"`
	End   *int64 `json:"end,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expect clause matched.
	Pass bool `json:"pass"`

	Trace []TraceEvent `json:"trace"`

	// Errors holds one message per mismatch. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
