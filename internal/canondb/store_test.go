package canondb_test

import (
	"context"
	"path/filepath"
	"testing"

	"aafcanon/internal/canon"
	"aafcanon/internal/canondb"
	"aafcanon/internal/testsupport"
)

func openStore(t *testing.T) *canondb.Store {
	t.Helper()
	store, err := canondb.Open(context.Background(), filepath.Join(t.TempDir(), "canon.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "canon.db")
	store, err := canondb.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	if store.Path() != path {
		t.Errorf("path = %q", store.Path())
	}
}

func TestOpenRejectsConcurrentLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canon.db")
	first, err := canondb.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	defer first.Close()

	if _, err := canondb.Open(context.Background(), path); err == nil {
		t.Fatal("second open must fail while the lock is held")
	}
}

func TestLoadAndCount(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	result, err := store.Load(ctx, testsupport.SampleDocument())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if result.Events != 1 {
		t.Errorf("events = %d", result.Events)
	}
	if result.DocumentID == 0 {
		t.Error("document id must be assigned")
	}

	count, err := store.DocumentCount(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d", count)
	}
}

func TestLoadTwiceThenReset(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	for i := 0; i < 2; i++ {
		if _, err := store.Load(ctx, testsupport.SampleDocument()); err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
	}
	count, err := store.DocumentCount(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("count = %d", count)
	}

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	count, err = store.DocumentCount(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("count after reset = %d", count)
	}
}

func TestLoadEffectDetail(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	doc := testsupport.SampleDocument()
	doc.Timeline.Events[0].Effect = canon.Effect{
		Name:     "Resize",
		OnFiller: false,
		Parameters: map[string]any{
			"Scale":   1.5,
			"Label":   "wide",
			"Cleared": nil,
		},
		Keyframes: map[string][]canon.Keyframe{
			"Scale": {{T: 0, V: 1.0}, {T: 2, V: 1.5}},
		},
		ExternalRefs: []canon.ExternalRef{
			{Kind: canon.RefKindImage, Path: "/g/logo.png"},
		},
	}

	if _, err := store.Load(ctx, doc); err != nil {
		t.Fatalf("load with effect detail: %v", err)
	}
}
