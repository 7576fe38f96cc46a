// Package ffprobe provides a typed wrapper around ffprobe JSON output.
// The sync engine uses it to confirm a video carries an audio stream and
// to read the container duration before sampling windows.
package ffprobe
