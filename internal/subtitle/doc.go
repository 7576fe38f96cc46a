// Package subtitle models SRT subtitle tracks as cue lists on a float64
// seconds timeline and handles parsing and serialization under the
// caller-selected text encoding.
package subtitle
