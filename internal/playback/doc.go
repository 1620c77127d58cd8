// Package playback computes loop ranges around phrases or selections and
// drives the host transport while a loop repeats.
//
// Ranges are kept in fractional blicks until they are handed to the
// transport, which works in seconds. Padding is applied through a seconds
// round trip so beat and second padding compose under any tempo map, and the
// padded range can then be pulled back from neighboring notes that would
// otherwise be heard at the loop edges.
package playback
