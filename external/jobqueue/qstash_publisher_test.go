package jobqueue

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublishReaudit_SendsQStashMessage(t *testing.T) {
	t.Parallel()

	var (
		gotPath  string
		gotDedup string
		gotAuth  string
		gotToken string
		gotBody  map[string]string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDedup = r.Header.Get("Upstash-Deduplication-Id")
		gotAuth = r.Header.Get("Authorization")
		gotToken = r.Header.Get("Upstash-Forward-X-Internal-Job-Token")
		raw, _ := io.ReadAll(r.Body)
		_ = sonic.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:          server.URL,
		Token:            "qstash-token",
		TargetBaseURL:    "https://arena.example.com",
		InternalJobToken: "job-secret",
	}, discardLogger())

	if err := publisher.PublishReaudit(context.Background(), "arena-spring-2026"); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/v2/publish/") || !strings.HasSuffix(gotPath, reauditJobPath) {
		t.Fatalf("publish path: %s", gotPath)
	}
	if gotDedup != "reaudit:arena-spring-2026" {
		t.Fatalf("deduplication id: %s", gotDedup)
	}
	if gotAuth != "Bearer qstash-token" || gotToken != "job-secret" {
		t.Fatalf("auth headers: %q %q", gotAuth, gotToken)
	}
	if gotBody["event_id"] != "arena-spring-2026" {
		t.Fatalf("payload: %v", gotBody)
	}
}

func TestEnqueue_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       "ftp://queue.example.com",
		TargetBaseURL: "https://arena.example.com",
	}, discardLogger())

	if err := publisher.Enqueue(context.Background(), "/v1/internal/jobs/reaudit-results", nil, 0, ""); err == nil {
		t.Fatal("expected invalid base url error")
	}

	publisher = NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       "https://queue.example.com",
		TargetBaseURL: "https://arena.example.com",
	}, discardLogger())
	if err := publisher.Enqueue(context.Background(), "   ", nil, 0, ""); err == nil {
		t.Fatal("expected missing path error")
	}
}

func TestEnqueue_NonRetryableStatusSurfaces(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       server.URL,
		TargetBaseURL: "https://arena.example.com",
	}, discardLogger())

	err := publisher.Enqueue(context.Background(), "/v1/internal/jobs/reaudit-results", nil, 0, "")
	if err == nil || !strings.Contains(err.Error(), "status=400") {
		t.Fatalf("expected status surfaced, got %v", err)
	}
}
