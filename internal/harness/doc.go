// Package harness runs timeline query scenarios against inline projects.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	project:
//	  groups:
//	    - id: a
//	      notes:
//	        - {onset: 0, duration: 480, pitch: 60, lyrics: la}
//	  tracks:
//	    - refs:
//	        - {group: a, onset: 0}
//	steps:
//	  - op: phrase
//	    position: 100
//	    expect: {onsets: [0]}
//
// Supported ops are at_or_after, previous, next, nearest, phrase and
// loop_range. Positions are absolute blicks. An expect clause may check
// found, onsets, and for loop_range the start and end blick.
//
// Each run records one TraceEvent per step. RunWithGolden compares the
// canonical JSON of the trace against testdata/golden/{name}.golden.
package harness
