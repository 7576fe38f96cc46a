package subtitle

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"subsync/internal/services"
)

// Cue is one subtitle entry. Start and End are seconds from track origin
// with millisecond precision. Text and Index are immutable once parsed; only
// a transform produces cues with different times, and always on a copy.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// Track is an ordered cue list.
type Track []Cue

// Clone returns an independent copy of the track.
func (t Track) Clone() Track {
	if t == nil {
		return nil
	}
	cp := make(Track, len(t))
	copy(cp, t)
	return cp
}

// EncodingUTF8 and EncodingLatin1 are the supported subtitle encodings.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

// Parse decodes data under the given encoding and parses it as SRT.
// A wrong encoding choice surfaces as a parse error, never as garbled cues.
func Parse(data []byte, encoding string) (Track, error) {
	content, err := decode(data, encoding)
	if err != nil {
		return nil, err
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimPrefix(content, "\uFEFF")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, services.Wrap(services.ErrParse, "subtitle", "parse", "no cues found", nil)
	}

	var track Track
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		cue, err := parseBlock(block)
		if err != nil {
			return nil, err
		}
		track = append(track, cue)
	}
	if len(track) == 0 {
		return nil, services.Wrap(services.ErrParse, "subtitle", "parse", "no cues found", nil)
	}
	return track, nil
}

func parseBlock(block string) (Cue, error) {
	lines := strings.Split(block, "\n")
	if len(lines) < 2 {
		return Cue{}, services.Wrap(services.ErrParse, "subtitle", "parse", fmt.Sprintf("malformed cue block %q", firstLine(block)), nil)
	}

	var index int
	if _, err := fmt.Sscanf(strings.TrimSpace(lines[0]), "%d", &index); err != nil {
		return Cue{}, services.Wrap(services.ErrParse, "subtitle", "parse", fmt.Sprintf("invalid cue index %q", lines[0]), err)
	}

	parts := strings.Split(lines[1], "-->")
	if len(parts) != 2 {
		return Cue{}, services.Wrap(services.ErrParse, "subtitle", "parse", fmt.Sprintf("invalid timing line %q", lines[1]), nil)
	}
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return Cue{}, services.Wrap(services.ErrParse, "subtitle", "parse", "invalid start timestamp", err)
	}
	end, err := ParseTimestamp(parts[1])
	if err != nil {
		return Cue{}, services.Wrap(services.ErrParse, "subtitle", "parse", "invalid end timestamp", err)
	}
	if start > end {
		return Cue{}, services.Wrap(services.ErrParse, "subtitle", "parse", fmt.Sprintf("cue %d starts after it ends", index), nil)
	}

	text := ""
	if len(lines) > 2 {
		text = strings.Join(lines[2:], "\n")
	}
	return Cue{Index: index, Start: start, End: end, Text: text}, nil
}

// Serialize renders the track as SRT bytes in the given encoding. Negative
// times (possible after an offset-dominated transform) clamp to zero.
func Serialize(track Track, encoding string) ([]byte, error) {
	var sb strings.Builder
	for i, cue := range track {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d\n", cue.Index)
		fmt.Fprintf(&sb, "%s --> %s\n", FormatTimestamp(cue.Start), FormatTimestamp(cue.End))
		sb.WriteString(cue.Text)
		sb.WriteString("\n")
	}
	return encode(sb.String(), encoding)
}

func decode(data []byte, encoding string) (string, error) {
	switch normalizeEncoding(encoding) {
	case EncodingUTF8:
		if !utf8.Valid(data) {
			return "", services.Wrap(services.ErrParse, "subtitle", "decode", "invalid UTF-8; try a different encoding", nil)
		}
		return string(data), nil
	case EncodingLatin1:
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", services.Wrap(services.ErrParse, "subtitle", "decode", "latin-1 decode failed; try a different encoding", err)
		}
		return string(decoded), nil
	default:
		return "", services.Wrap(services.ErrParse, "subtitle", "decode", fmt.Sprintf("unsupported encoding %q", encoding), nil)
	}
}

func encode(content, encoding string) ([]byte, error) {
	switch normalizeEncoding(encoding) {
	case EncodingUTF8:
		return []byte(content), nil
	case EncodingLatin1:
		encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(content))
		if err != nil {
			return nil, services.Wrap(services.ErrParse, "subtitle", "encode", "text not representable in latin-1", err)
		}
		return encoded, nil
	default:
		return nil, services.Wrap(services.ErrParse, "subtitle", "encode", fmt.Sprintf("unsupported encoding %q", encoding), nil)
	}
}

func normalizeEncoding(encoding string) string {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8
	case "latin-1", "latin1", "iso-8859-1":
		return EncodingLatin1
	default:
		return strings.ToLower(strings.TrimSpace(encoding))
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
