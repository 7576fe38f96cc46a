package config

const (
	defaultLanguage             = "en-US"
	defaultEncoding             = "utf-8"
	defaultMinConfidence        = 0.70
	defaultMinWordOverlap       = 3
	defaultWindowSeconds        = 2.5
	defaultSearchSpanSeconds    = 15.0
	defaultMinAnchorSeparation  = 300.0
	defaultMaxCandidates        = 50
	defaultMinScale             = 0.5
	defaultMaxScale             = 2.0
	defaultRetryBackoffSeconds  = 2.0
	defaultConcurrency          = 2
	defaultRecognizerIntervalMS = 500
	defaultRecognizerTimeout    = 15
	defaultRecognizerBaseURL    = "http://www.google.com/speech-api/v2/recognize"
	defaultFFmpegBinary         = "ffmpeg"
	defaultFFprobeBinary        = "ffprobe"
	defaultLogDir               = "~/.local/share/subsync/logs"
	defaultHistoryDB            = "~/.local/share/subsync/history.db"
	defaultLogLevel             = "info"
	defaultLogFormat            = "console"
	defaultNotifyTimeout        = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Sync: Sync{
			Language:                   defaultLanguage,
			Encoding:                   defaultEncoding,
			MinConfidence:              defaultMinConfidence,
			MinWordOverlap:             defaultMinWordOverlap,
			WindowSeconds:              defaultWindowSeconds,
			SearchSpanSeconds:          defaultSearchSpanSeconds,
			MinAnchorSeparationSeconds: defaultMinAnchorSeparation,
			MaxCandidates:              defaultMaxCandidates,
			MinScale:                   defaultMinScale,
			MaxScale:                   defaultMaxScale,
			RetryBackoffSeconds:        defaultRetryBackoffSeconds,
		},
		Batch: Batch{
			Concurrency:          defaultConcurrency,
			RecognizerIntervalMS: defaultRecognizerIntervalMS,
		},
		Recognizer: Recognizer{
			BaseURL:               defaultRecognizerBaseURL,
			RequestTimeoutSeconds: defaultRecognizerTimeout,
		},
		Paths: Paths{
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Batch:          true,
			Errors:         true,
		},
	}
}
