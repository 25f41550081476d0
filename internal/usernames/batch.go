// internal/usernames/batch.go
package usernames

import (
	"errors"
	"fmt"
	"io"

	"github.com/fauxchat/fauxchat-cli/internal/tokenizer"
)

// DefaultBatchSize is the number of records per batch
const DefaultBatchSize = 32

// ErrInvalidBatchSize indicates a batch size below 1
var ErrInvalidBatchSize = errors.New("batch size must be at least 1")

// Encoder tokenizes a group of names into equally long, padded rows
type Encoder interface {
	EncodeBatch(texts []string) ([]tokenizer.Encoding, error)
}

// Batch holds up to batch-size tokenized records. Every row of the id
// matrices is padded to the longest encoding in the batch.
type Batch struct {
	Names         []string   `json:"name" yaml:"name"`
	InputIDs      [][]int32  `json:"input_ids" yaml:"input_ids"`
	TokenTypeIDs  [][]int32  `json:"token_type_ids" yaml:"token_type_ids"`
	AttentionMask [][]int32  `json:"attention_mask" yaml:"attention_mask"`
	Tokens        [][]string `json:"tokens" yaml:"tokens"`
}

// Len returns the number of records in the batch
func (b *Batch) Len() int {
	return len(b.Names)
}

// Shape returns [rows, columns] of the id matrices
func (b *Batch) Shape() [2]int {
	if len(b.InputIDs) == 0 {
		return [2]int{0, 0}
	}
	return [2]int{len(b.InputIDs), len(b.InputIDs[0])}
}

// Loader groups records from a Source into tokenized batches
type Loader struct {
	src       *Source
	enc       Encoder
	batchSize int
}

// NewLoader creates a Loader
func NewLoader(src *Source, enc Encoder, batchSize int) (*Loader, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, batchSize)
	}
	return &Loader{src: src, enc: enc, batchSize: batchSize}, nil
}

// Next returns the next batch, or io.EOF once the source is exhausted.
// The final batch may be short.
func (l *Loader) Next() (*Batch, error) {
	var names []string
	for len(names) < l.batchSize {
		rec, ok := l.src.Next()
		if !ok {
			break
		}
		names = append(names, rec.Name)
	}
	if err := l.src.Err(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, io.EOF
	}

	rows, err := l.enc.EncodeBatch(names)
	if err != nil {
		return nil, err
	}
	return collate(names, rows), nil
}

// First returns the first batch. An empty source gives an empty batch.
func (l *Loader) First() (*Batch, error) {
	batch, err := l.Next()
	if errors.Is(err, io.EOF) {
		return emptyBatch(), nil
	}
	return batch, err
}

func emptyBatch() *Batch {
	return &Batch{
		Names:         []string{},
		InputIDs:      [][]int32{},
		TokenTypeIDs:  [][]int32{},
		AttentionMask: [][]int32{},
		Tokens:        [][]string{},
	}
}

// collate stacks padded encodings into matrices
func collate(names []string, rows []tokenizer.Encoding) *Batch {
	b := &Batch{
		Names:         names,
		InputIDs:      make([][]int32, len(rows)),
		TokenTypeIDs:  make([][]int32, len(rows)),
		AttentionMask: make([][]int32, len(rows)),
		Tokens:        make([][]string, len(rows)),
	}
	for i, enc := range rows {
		b.InputIDs[i] = enc.IDs
		b.TokenTypeIDs[i] = enc.TypeIDs
		b.AttentionMask[i] = enc.AttentionMask
		b.Tokens[i] = enc.Tokens
	}
	return b
}
