package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestUserAgent(t *testing.T) {
	orig := GetUserAgent()
	defer SetUserAgent(orig)

	SetUserAgent("test-agent/1.0")
	if got := GetUserAgent(); got != "test-agent/1.0" {
		t.Errorf("GetUserAgent() = %q, want %q", got, "test-agent/1.0")
	}
}

func TestDoSetsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	req, err := NewRequest(context.Background(), http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}

	resp, err := Do(context.Background(), ServiceCabs, req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	resp.Body.Close()

	if gotUA != GetUserAgent() {
		t.Errorf("User-Agent = %q, want %q", gotUA, GetUserAgent())
	}
}

func TestDoUnknownService(t *testing.T) {
	req, err := NewRequest(context.Background(), http.MethodGet, "http://127.0.0.1:0/", nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}

	if _, err := Do(context.Background(), "no-such-service", req); err == nil {
		t.Error("Do() with unknown service expected error, got nil")
	}
}

func TestWaitRespectsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	// Drain the burst so the next wait must block past the deadline.
	for i := 0; i < 4; i++ {
		waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := WaitForService(waitCtx, ServiceCabs); err != nil {
			waitCancel()
			t.Fatalf("WaitForService() during drain error = %v", err)
		}
		waitCancel()
	}

	if err := WaitForService(ctx, ServiceCabs); err == nil {
		t.Error("WaitForService() with expired context expected error, got nil")
	}
}
