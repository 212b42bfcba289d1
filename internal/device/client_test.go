package device

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/status" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"pattern": "0100"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	got, err := client.GetStatus(context.Background())
	if err != nil {
		t.Fatalf("GetStatus() returned error: %v", err)
	}
	if got != "0100" {
		t.Errorf("GetStatus() = %q, want 0100", got)
	}
}

func TestGetStatus_InvalidPattern(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"pattern": "banana"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	_, err := client.GetStatus(context.Background())
	if err == nil {
		t.Fatal("GetStatus() should fail on invalid pattern field")
	}
	if code := CodeOf(err); code != ErrCodeProtocol {
		t.Errorf("error code = %q, want %q", code, ErrCodeProtocol)
	}
}

func TestGetStatus_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	_, err := client.GetStatus(context.Background())
	if err == nil {
		t.Fatal("GetStatus() should fail on malformed body")
	}
	if code := CodeOf(err); code != ErrCodeProtocol {
		t.Errorf("error code = %q, want %q", code, ErrCodeProtocol)
	}
}

func TestGetStatus_Unreachable(t *testing.T) {
	// Bind and immediately close to get a port nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url, 500*time.Millisecond)
	_, err := client.GetStatus(context.Background())
	if err == nil {
		t.Fatal("GetStatus() should fail when controller is down")
	}
	if code := CodeOf(err); code != ErrCodeUnreachable {
		t.Errorf("error code = %q, want %q", code, ErrCodeUnreachable)
	}
}

func TestSetPattern(t *testing.T) {
	var gotBody setRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/setLedStatus" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"pattern": gotBody.Pattern})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	applied, err := client.SetPattern(context.Background(), "1010")
	if err != nil {
		t.Fatalf("SetPattern() returned error: %v", err)
	}
	if gotBody.Pattern != "1010" {
		t.Errorf("pattern sent downstream = %q, want 1010", gotBody.Pattern)
	}
	if applied != "1010" {
		t.Errorf("SetPattern() = %q, want echoed 1010", applied)
	}
}

func TestSetPattern_NoEcho(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	applied, err := client.SetPattern(context.Background(), "0010")
	if err != nil {
		t.Fatalf("SetPattern() returned error: %v", err)
	}
	// Without a device echo, the requested pattern is reported.
	if applied != "0010" {
		t.Errorf("SetPattern() = %q, want requested 0010", applied)
	}
}

func TestSetPattern_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad pattern", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	_, err := client.SetPattern(context.Background(), "1111")
	if err == nil {
		t.Fatal("SetPattern() should fail on non-2xx status")
	}
	if code := CodeOf(err); code != ErrCodeProtocol {
		t.Errorf("error code = %q, want %q", code, ErrCodeProtocol)
	}
}

func TestSetPattern_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url, 500*time.Millisecond)
	_, err := client.SetPattern(context.Background(), "1000")
	if err == nil {
		t.Fatal("SetPattern() should fail when controller is down")
	}
	if code := CodeOf(err); code != ErrCodeUnreachable {
		t.Errorf("error code = %q, want %q", code, ErrCodeUnreachable)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := newError(ErrCodeUnreachable, "failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if CodeOf(err) != ErrCodeUnreachable {
		t.Errorf("CodeOf() = %q, want %q", CodeOf(err), ErrCodeUnreachable)
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Error("CodeOf() on a plain error should be empty")
	}
}

func TestNewClientDefaultTimeout(t *testing.T) {
	client := NewClient("http://localhost:5000", 0)
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", client.httpClient.Timeout, DefaultTimeout)
	}

	client = NewClient("http://localhost:5000", 2*time.Second)
	if client.httpClient.Timeout != 2*time.Second {
		t.Errorf("timeout = %v, want 2s", client.httpClient.Timeout)
	}
}
