// internal/tokenizer/errors.go
package tokenizer

import "errors"

var (
	// ErrEmptyVocab indicates the vocabulary file had no tokens
	ErrEmptyVocab = errors.New("vocabulary is empty")

	// ErrMissingSpecialToken indicates [PAD], [UNK], [CLS] or [SEP] is absent from the vocabulary
	ErrMissingSpecialToken = errors.New("vocabulary is missing a special token")
)
