// Package textutil provides the text normalization used when comparing
// recognized speech against subtitle cue text.
//
// Normalization lowercases, strips everything non-alphanumeric, and
// collapses whitespace so that punctuation and casing differences between a
// recognition transcript and a cue never affect word overlap counts.
package textutil
