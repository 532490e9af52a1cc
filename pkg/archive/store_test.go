package archive

import (
	"testing"

	"github.com/zen-systems/tiergate/pkg/artifact"
)

func TestPutGetRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	art := artifact.New("the answer", "google", "gemini-2.0-flash", "the question")
	hash, err := store.Put(art)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if len(hash) != 64 {
		t.Errorf("hash length = %d, want 64", len(hash))
	}

	got, err := store.Get(hash)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Content != art.Content || got.Model != art.Model {
		t.Errorf("round trip mismatch: got %+v", got)
	}
}

func TestPutIsContentAddressed(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	art := artifact.New("same content", "mock", "mock-1", "p")
	h1, err := store.Put(art)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	h2, err := store.Put(art)
	if err != nil {
		t.Fatalf("Put again: %v", err)
	}
	if h1 != h2 {
		t.Errorf("same artifact hashed differently: %s vs %s", h1, h2)
	}
}

func TestGetUnknownHash(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, err := store.Get("deadbeef"); err == nil {
		t.Errorf("Get of unknown hash succeeded")
	}
}
