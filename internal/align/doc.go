// Package align implements the subtitle alignment engine: the confidence
// matcher deciding whether recognized speech belongs to a cue, the candidate
// selector ordering cues for recognition attempts, the two-point linear
// transform solver, and the sync job that drives them against the external
// audio extractor and speech recognizer for one subtitle/video pair.
package align
