package modelcache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lexicraft/namesmith/pkg/namesmith/markov"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func trainedModel() *markov.Model {
	return markov.Train([]string{"anna", "bella", "carla", "daniel", "elena"})
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	model := trainedModel()

	if err := s.Put(ctx, "first", "hash-a", model); err != nil {
		t.Fatal(err)
	}
	got, ok := s.Get(ctx, "first", "hash-a")
	if !ok {
		t.Fatal("stored model not found")
	}
	if got.Score("anna") != model.Score("anna") {
		t.Errorf("cached model scores differently: %f vs %f",
			got.Score("anna"), model.Score("anna"))
	}
}

func TestGetMissesOnWrongHash(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "first", "hash-a", trainedModel()); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get(ctx, "first", "hash-b"); ok {
		t.Error("stale corpus hash should miss")
	}
	if _, ok := s.Get(ctx, "surname", "hash-a"); ok {
		t.Error("different role should miss")
	}
}

func TestPutOverwritesSameKey(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := markov.Train([]string{"anna", "bella"})
	second := markov.Train([]string{"morton", "welden", "harris"})

	if err := s.Put(ctx, "first", "hash-a", first); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "first", "hash-a", second); err != nil {
		t.Fatal(err)
	}
	got, ok := s.Get(ctx, "first", "hash-a")
	if !ok {
		t.Fatal("model missing after overwrite")
	}
	if got.Score("welden") != second.Score("welden") {
		t.Error("overwrite did not replace the payload")
	}
}

func TestCorruptPayloadIsAMiss(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "first", "hash-a", trainedModel()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.db.ExecContext(ctx,
		"UPDATE models SET payload = ? WHERE role = 'first'", []byte("garbage")); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get(ctx, "first", "hash-a"); ok {
		t.Error("corrupt payload should read as a miss")
	}
}

func TestPruneDropsStaleHashes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "first", "old-hash", trainedModel()); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "first", "new-hash", trainedModel()); err != nil {
		t.Fatal(err)
	}
	if err := s.Prune(ctx, "first", "new-hash"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get(ctx, "first", "old-hash"); ok {
		t.Error("pruned entry still present")
	}
	if _, ok := s.Get(ctx, "first", "new-hash"); !ok {
		t.Error("current entry should survive pruning")
	}
}
