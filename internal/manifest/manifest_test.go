package manifest

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "manifest.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestAddAndListClips(t *testing.T) {
	store := openTestStore(t)

	clips := []Clip{
		{Index: 2, Word: "tree", Path: "2_tree.mp4"},
		{Index: 1, Word: "apple", Path: "1_apple.mp4"},
		{Index: 3, Word: "banana", Path: "3_banana.mp4"},
	}
	for _, clip := range clips {
		if err := store.AddClip(clip); err != nil {
			t.Fatalf("AddClip(%s) error = %v", clip.Word, err)
		}
	}

	got, err := store.Clips()
	if err != nil {
		t.Fatalf("Clips() error = %v", err)
	}

	wantWords := []string{"apple", "tree", "banana"}
	if len(got) != len(wantWords) {
		t.Fatalf("Clips() returned %d clips, want %d", len(got), len(wantWords))
	}
	for i, clip := range got {
		if clip.Word != wantWords[i] {
			t.Errorf("clip %d word = %s, want %s", i, clip.Word, wantWords[i])
		}
		if clip.Batch != 0 {
			t.Errorf("clip %d batch = %d, want 0 before combination", i, clip.Batch)
		}
	}
}

func TestAddClipDuplicateIndex(t *testing.T) {
	store := openTestStore(t)

	if err := store.AddClip(Clip{Index: 1, Word: "apple", Path: "1_apple.mp4"}); err != nil {
		t.Fatalf("AddClip() error = %v", err)
	}
	if err := store.AddClip(Clip{Index: 1, Word: "tree", Path: "1_tree.mp4"}); err == nil {
		t.Error("AddClip() should reject duplicate index")
	}
}

func TestMarkCombinedAndPending(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 4; i++ {
		if err := store.AddClip(Clip{Index: i, Word: "word", Path: "clip.mp4"}); err != nil {
			t.Fatalf("AddClip() error = %v", err)
		}
	}

	if err := store.MarkCombined(1, []int{1, 2}); err != nil {
		t.Fatalf("MarkCombined() error = %v", err)
	}

	pending, err := store.PendingClips()
	if err != nil {
		t.Fatalf("PendingClips() error = %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("PendingClips() returned %d clips, want 2", len(pending))
	}
	if pending[0].Index != 3 || pending[1].Index != 4 {
		t.Errorf("pending indices = %d, %d, want 3, 4", pending[0].Index, pending[1].Index)
	}

	all, err := store.Clips()
	if err != nil {
		t.Fatalf("Clips() error = %v", err)
	}
	if all[0].Batch != 1 || all[1].Batch != 1 {
		t.Errorf("combined clips batch = %d, %d, want 1, 1", all[0].Batch, all[1].Batch)
	}
}

func TestNextBatchNumber(t *testing.T) {
	store := openTestStore(t)

	n, err := store.NextBatchNumber()
	if err != nil {
		t.Fatalf("NextBatchNumber() error = %v", err)
	}
	if n != 1 {
		t.Errorf("NextBatchNumber() on empty store = %d, want 1", n)
	}

	if err := store.AddClip(Clip{Index: 1, Word: "apple", Path: "1_apple.mp4"}); err != nil {
		t.Fatalf("AddClip() error = %v", err)
	}
	if err := store.MarkCombined(3, []int{1}); err != nil {
		t.Fatalf("MarkCombined() error = %v", err)
	}

	n, err = store.NextBatchNumber()
	if err != nil {
		t.Fatalf("NextBatchNumber() error = %v", err)
	}
	if n != 4 {
		t.Errorf("NextBatchNumber() = %d, want 4", n)
	}
}
