package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetch_OK(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<p>hello</p>"))
	}))
	defer srv.Close()

	res, err := New(WithUserAgent("test-agent")).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.HTML != "<p>hello</p>" || res.StatusCode != 200 {
		t.Fatalf("unexpected result %+v", res)
	}
	if gotUA != "test-agent" {
		t.Fatalf("expected custom user agent, got %q", gotUA)
	}
}

func TestFetch_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New().Fetch(context.Background(), srv.URL)
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		t.Fatalf("expected StatusError 404, got %v", err)
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "example.com", "ftp://example.com/x", "http://", "://bad"} {
		if _, err := New().Fetch(context.Background(), u); !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("Fetch(%q): expected ErrInvalidURL, got %v", u, err)
		}
	}
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := New(WithTimeout(50 * time.Millisecond)).Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
}

func TestFetch_BodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<p>0123456789</p>"))
	}))
	defer srv.Close()

	if _, err := New(WithMaxBodyBytes(8)).Fetch(context.Background(), srv.URL); !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("expected ErrBodyTooLarge, got %v", err)
	}
	res, err := New(WithMaxBodyBytes(17)).Fetch(context.Background(), srv.URL)
	if err != nil || res.HTML != "<p>0123456789</p>" {
		t.Fatalf("a body exactly at the limit must be read whole, got %v %v", res, err)
	}
}
