package media

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"subsync/internal/services"
)

const webSpeechUserAgent = "subsync/0.1.0"

// WebSpeechRecognizer calls the Google Web Speech API. The endpoint returns
// newline-separated JSON documents; the first one carrying alternatives
// holds the transcript and confidence.
type WebSpeechRecognizer struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewWebSpeechRecognizer builds a recognizer against baseURL with the given
// request timeout.
func NewWebSpeechRecognizer(apiKey, baseURL string, timeout time.Duration) *WebSpeechRecognizer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &WebSpeechRecognizer{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Recognize transcribes the clip. Empty clips short-circuit to NoSpeech.
func (r *WebSpeechRecognizer) Recognize(ctx context.Context, clip AudioClip, language string) (Result, error) {
	if clip.Empty() {
		return Result{Kind: ResultNoSpeech}, nil
	}

	endpoint, err := r.requestURL(language)
	if err != nil {
		return Result{}, services.Wrap(services.ErrPermanent, "recognizer", "build request", "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(clip.Data))
	if err != nil {
		return Result{}, services.Wrap(services.ErrPermanent, "recognizer", "build request", "", err)
	}
	req.Header.Set("User-Agent", webSpeechUserAgent)
	req.Header.Set("Content-Type", fmt.Sprintf("audio/l16; rate=%d", clip.SampleRate))

	resp, err := r.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, services.Wrap(services.ErrCancelled, "recognizer", "recognize", "", ctx.Err())
		}
		return Result{}, services.Wrap(services.ErrTransient, "recognizer", "recognize", "request failed", err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return Result{}, err
	}

	return parseWebSpeechBody(resp.Body)
}

func (r *WebSpeechRecognizer) requestURL(language string) (string, error) {
	u, err := url.Parse(r.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("client", "chromium")
	q.Set("lang", language)
	q.Set("pFilter", "0")
	if r.apiKey != "" {
		q.Set("key", r.apiKey)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func classifyStatus(status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusForbidden, status == http.StatusUnauthorized:
		return services.Wrap(services.ErrPermanent, "recognizer", "recognize", fmt.Sprintf("authorization rejected (HTTP %d)", status), nil)
	case status == http.StatusTooManyRequests:
		return services.Wrap(services.ErrPermanent, "recognizer", "recognize", "request quota exhausted", nil)
	case status >= 400 && status < 500:
		return services.Wrap(services.ErrPermanent, "recognizer", "recognize", fmt.Sprintf("request rejected (HTTP %d)", status), nil)
	default:
		return services.Wrap(services.ErrTransient, "recognizer", "recognize", fmt.Sprintf("provider unavailable (HTTP %d)", status), nil)
	}
}

type webSpeechAlternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

type webSpeechResult struct {
	Alternative []webSpeechAlternative `json:"alternative"`
	Final       bool                   `json:"final"`
}

type webSpeechResponse struct {
	Result []webSpeechResult `json:"result"`
}

func parseWebSpeechBody(body io.Reader) (Result, error) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var doc webSpeechResponse
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			return Result{}, services.Wrap(services.ErrTransient, "recognizer", "recognize", "malformed provider response", err)
		}
		for _, res := range doc.Result {
			if len(res.Alternative) == 0 {
				continue
			}
			best := res.Alternative[0]
			if strings.TrimSpace(best.Transcript) == "" {
				continue
			}
			return Result{
				Kind:       ResultRecognized,
				Transcript: best.Transcript,
				Confidence: best.Confidence,
			}, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return Result{}, services.Wrap(services.ErrTransient, "recognizer", "recognize", "read provider response", err)
	}
	return Result{Kind: ResultNoSpeech}, nil
}
