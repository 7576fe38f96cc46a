// Package fileutil provides path helpers for locating subtitle and video
// files and deriving output names.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Output name suffixes appended before the .srt extension.
const (
	SyncedSuffix      = "_synced"
	BatchSyncedSuffix = "_batch_synced"
)

var videoExtensions = map[string]struct{}{
	".mkv":  {},
	".mp4":  {},
	".avi":  {},
	".m4v":  {},
	".mov":  {},
	".webm": {},
	".ts":   {},
}

// OutputPath derives the synced subtitle path next to the input file:
// "episode.srt" with SyncedSuffix becomes "episode_synced.srt".
func OutputPath(subtitlePath, suffix string) string {
	dir := filepath.Dir(subtitlePath)
	base := filepath.Base(subtitlePath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if ext == "" {
		ext = ".srt"
	}
	return filepath.Join(dir, stem+suffix+ext)
}

// ListByExt returns the regular files in dir whose extension matches ext
// (case-insensitive, leading dot required), sorted by name.
func ListByExt(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// ListSubtitles returns the .srt files in dir, sorted by name.
func ListSubtitles(dir string) ([]string, error) {
	return ListByExt(dir, ".srt")
}

// ListVideos returns the video files in dir, sorted by name. Extensions
// are matched against a fixed set of common container formats.
func ListVideos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := videoExtensions[ext]; ok {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
