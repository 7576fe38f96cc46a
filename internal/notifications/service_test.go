package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"subsync/internal/config"
	"subsync/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyBatchCompleted(context.Background(), 3, 0, time.Minute); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		notify         func(svc notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "sync completed",
			notify: func(svc notifications.Service) error {
				return svc.NotifySyncCompleted(context.Background(), "episode.01.srt", "scale=1.008333 offset=+4.917s")
			},
			expectTitle:   "Subsync - Sync Complete",
			expectMessage: "Synced: episode.01.srt\nscale=1.008333 offset=+4.917s",
			expectTags:    "subsync,sync,completed",
		},
		{
			name: "batch started",
			notify: func(svc notifications.Service) error {
				return svc.NotifyBatchStarted(context.Background(), 12)
			},
			expectTitle:   "Subsync - Batch Started",
			expectMessage: "Started batch sync with 12 pairings",
			expectTags:    "subsync,batch,started",
		},
		{
			name: "batch completed clean",
			notify: func(svc notifications.Service) error {
				return svc.NotifyBatchCompleted(context.Background(), 12, 0, 94*time.Second)
			},
			expectTitle:   "Subsync - Batch Complete",
			expectMessage: "Batch sync complete: 12 subtitles synced in 1m34s",
			expectTags:    "subsync,batch,completed",
		},
		{
			name: "batch completed with failures",
			notify: func(svc notifications.Service) error {
				return svc.NotifyBatchCompleted(context.Background(), 10, 2, 2*time.Minute)
			},
			expectTitle:   "Subsync - Batch Complete (with errors)",
			expectMessage: "Batch sync complete: 10 succeeded, 2 failed in 2m0s",
			expectTags:    "subsync,batch,completed",
		},
		{
			name: "error",
			notify: func(svc notifications.Service) error {
				return svc.NotifyError(context.Background(), errors.New("no anchors confirmed"), "batch")
			},
			expectTitle:    "Subsync - Error",
			expectMessage:  "Error with batch: no anchors confirmed",
			expectTags:     "subsync,error,alert",
			expectPriority: "high",
		},
		{
			name: "test notification",
			notify: func(svc notifications.Service) error {
				return svc.TestNotification(context.Background())
			},
			expectTitle:    "Subsync - Test",
			expectMessage:  "Notification system test",
			expectTags:     "subsync,test",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5

			svc := notifications.NewService(&cfg)
			if err := tc.notify(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceReportsHTTPFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx ntfy response")
	}
}
