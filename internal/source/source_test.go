package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const listing = "1 - Electronics > Telephony > Mobile Phones\n2 - Home & Garden > Furniture > Chairs\n"

func TestStaticFetch(t *testing.T) {
	got, err := Static(listing).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if got != listing {
		t.Fatalf("Fetch() = %q, want %q", got, listing)
	}
}

func TestFileFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.txt")
	if err := os.WriteFile(path, []byte(listing), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewFile(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if got != listing {
		t.Fatalf("Fetch() = %q, want %q", got, listing)
	}
}

func TestFileFetchMissing(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "nope.txt")).Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileWatchInvokesCallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.txt")
	if err := os.WriteFile(path, []byte(listing), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	src := NewFile(path)
	done := make(chan error, 1)
	go func() {
		done <- src.Watch(ctx, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(listing+"3 - Toys\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("watch callback not invoked after file write")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Watch() returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch() did not return after cancel")
	}
}

func TestHTTPFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listing))
	}))
	defer srv.Close()

	got, err := NewHTTP(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if got != listing {
		t.Fatalf("Fetch() = %q, want %q", got, listing)
	}
}

func TestHTTPFetchCachesWithinTTL(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(listing))
	}))
	defer srv.Close()

	h := NewHTTP(srv.URL, WithCacheTTL(time.Hour))
	for i := 0; i < 3; i++ {
		if _, err := h.Fetch(context.Background()); err != nil {
			t.Fatalf("Fetch() %d error: %v", i, err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("origin hit %d times, want 1", got)
	}
}

func TestHTTPFetchServesStaleOnFailure(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		w.Write([]byte(listing))
	}))
	defer srv.Close()

	// TTL zero: every Fetch goes back to the origin.
	h := NewHTTP(srv.URL, WithCacheTTL(0))
	if _, err := h.Fetch(context.Background()); err != nil {
		t.Fatalf("first Fetch() error: %v", err)
	}

	fail.Store(true)
	got, err := h.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() after failure error: %v", err)
	}
	if got != listing {
		t.Fatalf("stale body = %q, want %q", got, listing)
	}
}

func TestHTTPFetchErrorWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL).Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error when no cached body exists")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error %q does not mention status", err)
	}
}
