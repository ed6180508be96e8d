package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetch_OKAndHeaders(t *testing.T) {
	var gotAccept, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[]}`))
	}))
	defer srv.Close()

	f := Open(Options{UserAgent: "brandscope-test"})
	defer f.Close()

	page, err := f.Fetch(context.Background(), srv.URL+"/products.json", AcceptJSON)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !page.Available() {
		t.Fatalf("expected page to be available, status=%d", page.Status)
	}
	if string(page.Body) != `{"products":[]}` {
		t.Fatalf("unexpected body %q", page.Body)
	}
	if gotAccept != "application/json" {
		t.Fatalf("expected JSON Accept header, got %q", gotAccept)
	}
	if gotUA != "brandscope-test" {
		t.Fatalf("expected custom user agent, got %q", gotUA)
	}
}

func TestFetch_NonOKIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := Open(Options{})
	defer f.Close()

	page, err := f.Fetch(context.Background(), srv.URL+"/pages/faq", AcceptHTML)
	if err != nil {
		t.Fatalf("expected nil error for 404, got %v", err)
	}
	if page.Available() {
		t.Fatalf("expected 404 page to be unavailable")
	}
	if page.Status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", page.Status)
	}
}

func TestFetch_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>moved</html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := Open(Options{})
	defer f.Close()

	page, err := f.Fetch(context.Background(), srv.URL+"/old", AcceptHTML)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !page.Available() || string(page.Body) != "<html>moved</html>" {
		t.Fatalf("expected redirect to be followed, got status=%d body=%q", page.Status, page.Body)
	}
}

func TestFetch_UnreachableAndTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	f := Open(Options{Timeout: 20 * time.Millisecond})
	defer f.Close()

	if _, err := f.Fetch(context.Background(), srv.URL, AcceptHTML); !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable on timeout, got %v", err)
	}

	closed := httptest.NewServer(http.NotFoundHandler())
	addr := closed.URL
	closed.Close()

	if _, err := f.Fetch(context.Background(), addr, AcceptHTML); !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable for closed server, got %v", err)
	}
}
