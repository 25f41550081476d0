// internal/usernames/usernames_test.go
package usernames

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/fauxchat/fauxchat-cli/internal/tokenizer"
)

const testVocab = "[PAD]\n[UNK]\n[CLS]\n[SEP]\nNight\n##owl\nPixel\n##Pal\nZ\n"

func newTestTokenizer(t *testing.T) *tokenizer.Tokenizer {
	t.Helper()
	vocab, err := tokenizer.ReadVocab(strings.NewReader(testVocab))
	if err != nil {
		t.Fatalf("ReadVocab() error = %v", err)
	}
	tok, err := tokenizer.New(vocab)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tok
}

func TestSourceYieldsEveryLine(t *testing.T) {
	src := NewSource(strings.NewReader("Nightowl\n\nPixelPal\nlast"))

	var names []string
	for {
		rec, ok := src.Next()
		if !ok {
			break
		}
		names = append(names, rec.Name)
	}
	if err := src.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	want := []string{"Nightowl", "", "PixelPal", "last"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %q, want %q", names, want)
	}

	if _, ok := src.Next(); ok {
		t.Error("exhausted source should not yield again")
	}
}

func TestLoaderThreeNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte("Nightowl\nPixelPal\nZ\n"), 0644); err != nil {
		t.Fatalf("failed to write usernames: %v", err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	loader, err := NewLoader(src, newTestTokenizer(t), DefaultBatchSize)
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	batch, err := loader.First()
	if err != nil {
		t.Fatalf("First() error = %v", err)
	}
	if batch.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", batch.Len())
	}
	if batch.Shape() != [2]int{3, 4} {
		t.Errorf("Shape() = %v, want [3 4]", batch.Shape())
	}

	wantIDs := [][]int32{
		{2, 4, 5, 3},
		{2, 6, 7, 3},
		{2, 8, 3, 0},
	}
	if !reflect.DeepEqual(batch.InputIDs, wantIDs) {
		t.Errorf("InputIDs = %v, want %v", batch.InputIDs, wantIDs)
	}
	wantMask := [][]int32{{1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 0}}
	if !reflect.DeepEqual(batch.AttentionMask, wantMask) {
		t.Errorf("AttentionMask = %v, want %v", batch.AttentionMask, wantMask)
	}

	if _, err := loader.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() after last batch error = %v, want io.EOF", err)
	}
}

func TestLoaderEmptyFile(t *testing.T) {
	loader, err := NewLoader(NewSource(strings.NewReader("")), newTestTokenizer(t), DefaultBatchSize)
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	batch, err := loader.First()
	if err != nil {
		t.Fatalf("First() error = %v", err)
	}
	if batch.Len() != 0 {
		t.Errorf("Len() = %d, want 0", batch.Len())
	}
	if batch.Shape() != [2]int{0, 0} {
		t.Errorf("Shape() = %v, want [0 0]", batch.Shape())
	}
}

func TestLoaderSplitsIntoBatches(t *testing.T) {
	input := strings.Repeat("Z\n", 5)
	loader, err := NewLoader(NewSource(strings.NewReader(input)), newTestTokenizer(t), 2)
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	var sizes []int
	for {
		batch, err := loader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		sizes = append(sizes, batch.Len())
	}

	if !reflect.DeepEqual(sizes, []int{2, 2, 1}) {
		t.Errorf("batch sizes = %v, want [2 2 1]", sizes)
	}
}

func TestNewLoaderRejectsBadBatchSize(t *testing.T) {
	_, err := NewLoader(NewSource(strings.NewReader("")), newTestTokenizer(t), 0)
	if !errors.Is(err, ErrInvalidBatchSize) {
		t.Errorf("NewLoader() error = %v, want ErrInvalidBatchSize", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open() error = %v, want not-exist", err)
	}
}
