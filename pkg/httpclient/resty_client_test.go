package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
)

func TestRestyClientGetSendsQueryAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("lang"); got != "EN" {
			t.Errorf("lang = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "reader-test" {
			t.Errorf("User-Agent = %q", got)
		}
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewRestyClient(time.Second)
	resp, err := client.Get(context.Background(), Request{
		URL:     srv.URL,
		Query:   map[string]string{"lang": "EN"},
		Headers: map[string]string{"User-Agent": "reader-test"},
	})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusTeapot {
		t.Fatalf("StatusCode = %d", resp.StatusCode())
	}
	if string(resp.Body()) != `{"ok":true}` {
		t.Fatalf("Body = %s", resp.Body())
	}
}

func TestRestyClientHonoursCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRestyClient(5*time.Second).Get(ctx, Request{URL: srv.URL})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRestyClientEnforcesBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 4096)))
	}))
	defer srv.Close()

	client := NewRestyClient(time.Second)
	if _, err := client.Get(context.Background(), Request{URL: srv.URL, BodyLimit: 1024}); !errors.Is(err, resty.ErrResponseBodyTooLarge) {
		t.Fatalf("expected ErrResponseBodyTooLarge, got %v", err)
	}

	resp, err := client.Get(context.Background(), Request{URL: srv.URL, BodyLimit: 8192})
	if err != nil {
		t.Fatalf("Get under limit: %v", err)
	}
	if len(resp.Body()) != 4096 {
		t.Fatalf("body length = %d", len(resp.Body()))
	}
}
