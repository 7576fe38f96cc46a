package batch

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"subsync/internal/services"
)

// Pairing matches one subtitle file to one video file. Index is the item's
// position in the batch and stays stable across concurrent execution.
type Pairing struct {
	Index        int
	SubtitlePath string
	VideoPath    string
}

func (p Pairing) String() string {
	return fmt.Sprintf("%s + %s", filepath.Base(p.SubtitlePath), filepath.Base(p.VideoPath))
}

// Pair zips subtitle and video paths into pairings by sorting each list on
// its lowercased basename. Equal counts are required; callers curate the
// directories so positional pairing after sorting matches season episode
// naming conventions.
func Pair(subtitles, videos []string) ([]Pairing, error) {
	if len(subtitles) != len(videos) {
		return nil, services.Wrap(services.ErrValidation, "batch", "pair",
			fmt.Sprintf("%d subtitle file(s) but %d video file(s)", len(subtitles), len(videos)), nil)
	}
	if len(subtitles) == 0 {
		return nil, services.Wrap(services.ErrValidation, "batch", "pair", "nothing to pair", nil)
	}

	subs := sortedByBasename(subtitles)
	vids := sortedByBasename(videos)

	pairings := make([]Pairing, len(subs))
	for i := range subs {
		pairings[i] = Pairing{Index: i, SubtitlePath: subs[i], VideoPath: vids[i]}
	}
	return pairings, nil
}

func sortedByBasename(paths []string) []string {
	out := append([]string(nil), paths...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(filepath.Base(out[i])) < strings.ToLower(filepath.Base(out[j]))
	})
	return out
}
