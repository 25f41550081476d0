// internal/tokenizer/embed.go
package tokenizer

import (
	"bytes"
	_ "embed"
)

// The cased WordPiece vocabulary shared by bert-base-cased and bert-large-cased
//
//go:embed bert-base-cased-vocab.txt
var bertBaseCasedVocab []byte

// BertBaseCased returns a Tokenizer over the bundled bert-base-cased vocabulary
func BertBaseCased() (*Tokenizer, error) {
	vocab, err := ReadVocab(bytes.NewReader(bertBaseCasedVocab))
	if err != nil {
		return nil, err
	}
	return New(vocab)
}
