package media

import "context"

// AudioClip is a mono PCM audio window ready for speech recognition.
type AudioClip struct {
	Data       []byte
	SampleRate int
}

// Empty reports whether the clip carries no audio, which happens when a
// window falls at or past the end of the media.
func (c AudioClip) Empty() bool {
	return len(c.Data) == 0
}

// AudioExtractor extracts a time window of audio from a video file.
// Windows near or past end-of-media yield a clipped or empty clip rather
// than an error; callers never pre-validate bounds.
type AudioExtractor interface {
	ExtractWindow(ctx context.Context, videoPath string, startSec, durationSec float64) (AudioClip, error)
}

// ResultKind discriminates recognition outcomes.
type ResultKind int

const (
	// ResultNoSpeech means the provider found no recognizable speech.
	ResultNoSpeech ResultKind = iota
	// ResultRecognized means the provider returned a transcript.
	ResultRecognized
)

// Result is a recognition response. Transcript and Confidence are only
// meaningful when Kind is ResultRecognized.
type Result struct {
	Kind       ResultKind
	Transcript string
	Confidence float64
}

// Recognizer transcribes an audio clip in the given language. Errors wrap
// services.ErrTransient when a retry may succeed and services.ErrPermanent
// when it will not (quota exhausted, unsupported language, bad credentials).
type Recognizer interface {
	Recognize(ctx context.Context, clip AudioClip, language string) (Result, error)
}
