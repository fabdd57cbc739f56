package classifier

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type memoryWindowStore struct {
	count int64
}

func (s *memoryWindowStore) IncrementWindow(_ context.Context, _ string, window time.Duration) (int64, time.Duration, error) {
	s.count++
	return s.count, window, nil
}

func TestClassifyReturnsRemoteReply(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"status\":\"safe\",\"reason\":\"fine\",\"confidence\":0.9}"}}]}`))
	}))
	defer server.Close()

	gateway := NewGateway(&memoryWindowStore{}, Config{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1",
	}, nil)

	raw, err := gateway.Classify(context.Background(), "hello forum")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if raw != `{"status":"safe","reason":"fine","confidence":0.9}` {
		t.Fatalf("unexpected classify reply: %s", raw)
	}
	if atomic.LoadInt64(&calls) != 1 {
		t.Fatalf("expected exactly one remote call, got %d", calls)
	}
}

func TestClassifyStopsAtRateLimitWithoutRemoteCall(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"status\":\"safe\"}"}}]}`))
	}))
	defer server.Close()

	gateway := NewGateway(&memoryWindowStore{}, Config{
		APIKey:         "test-key",
		BaseURL:        server.URL + "/v1",
		CallsPerWindow: 2,
	}, nil)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := gateway.Classify(ctx, "text"); err != nil {
			t.Fatalf("classify #%d: %v", i+1, err)
		}
	}

	_, err := gateway.Classify(ctx, "text")
	if !errors.Is(err, ErrRateLimitExceeded) {
		t.Fatalf("expected ErrRateLimitExceeded, got %v", err)
	}
	if atomic.LoadInt64(&calls) != 2 {
		t.Fatalf("rate-limited call must not reach the remote endpoint, got %d calls", calls)
	}
}

func TestClassifyMapsRemoteFailureToUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	gateway := NewGateway(&memoryWindowStore{}, Config{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1",
	}, nil)

	_, err := gateway.Classify(context.Background(), "text")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on 500, got %v", err)
	}
}

func TestClassifyMapsUnreachableEndpointToUnavailable(t *testing.T) {
	gateway := NewGateway(&memoryWindowStore{}, Config{
		APIKey:  "test-key",
		BaseURL: "http://127.0.0.1:1/v1",
		Timeout: 500 * time.Millisecond,
	}, nil)

	_, err := gateway.Classify(context.Background(), "text")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on connection failure, got %v", err)
	}
}

func TestClassifyRejectsEmptyText(t *testing.T) {
	gateway := NewGateway(&memoryWindowStore{}, Config{APIKey: "test-key"}, nil)

	if _, err := gateway.Classify(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for empty text")
	}
}
