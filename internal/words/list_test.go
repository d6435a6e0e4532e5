package words

import (
	"path/filepath"
	"testing"

	"codeberg.org/snonux/wordreel/internal/testutil"
)

func TestReadListFile(t *testing.T) {
	tempDir := t.TempDir()
	content := "apple\n\ntree\r\n# comment line\n  banana  \n"
	path := testutil.CreateTestFile(t, tempDir, "words.txt", []byte(content))

	got, err := ReadListFile(path)
	if err != nil {
		t.Fatalf("ReadListFile() error = %v", err)
	}

	want := []string{"apple", "tree", "banana"}
	if len(got) != len(want) {
		t.Fatalf("ReadListFile() returned %d words, want %d: %v", len(got), len(want), got)
	}
	for i, word := range got {
		if word != want[i] {
			t.Errorf("word %d = %q, want %q", i, word, want[i])
		}
	}
}

func TestReadListFileMissing(t *testing.T) {
	if _, err := ReadListFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("ReadListFile() should fail on a missing file")
	}
}

func TestApplyOffset(t *testing.T) {
	list := []string{"apple", "tree", "banana"}

	tests := []struct {
		name    string
		offset  int
		want    []string
		wantErr bool
	}{
		{"zero offset", 0, list, false},
		{"skip first", 1, []string{"tree", "banana"}, false},
		{"negative offset", -1, nil, true},
		{"offset beyond end", 3, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyOffset(list, tt.offset)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyOffset() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ApplyOffset() returned %d words, want %d", len(got), len(tt.want))
			}
			for i, word := range got {
				if word != tt.want[i] {
					t.Errorf("word %d = %q, want %q", i, word, tt.want[i])
				}
			}
		})
	}
}
