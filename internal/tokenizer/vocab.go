// internal/tokenizer/vocab.go
package tokenizer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sugarme/tokenizer/model"
)

// Special tokens of the BERT vocabularies
const (
	PadToken  = "[PAD]"
	UnkToken  = "[UNK]"
	ClsToken  = "[CLS]"
	SepToken  = "[SEP]"
	MaskToken = "[MASK]"
)

// Vocab maps WordPiece tokens to ids. The id of a token is its 0-based line
// number in vocab.txt.
type Vocab struct {
	ids  model.Vocab
	size int
}

// LoadVocab reads a vocab.txt file such as the one shipped with bert-base-cased
func LoadVocab(path string) (*Vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary: %w", err)
	}
	defer f.Close()

	return ReadVocab(f)
}

// ReadVocab reads one token per line. If a token repeats, the first id wins.
func ReadVocab(r io.Reader) (*Vocab, error) {
	v := &Vocab{ids: make(model.Vocab)}

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			token := strings.TrimRight(line, "\r\n")
			if _, exists := v.ids[token]; !exists {
				v.ids[token] = v.size
			}
			v.size++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read vocabulary: %w", err)
		}
	}

	if v.size == 0 {
		return nil, ErrEmptyVocab
	}
	return v, nil
}

// ID returns the id of token
func (v *Vocab) ID(token string) (int32, bool) {
	id, ok := v.ids[token]
	return int32(id), ok
}

// Len returns the number of lines in the vocabulary
func (v *Vocab) Len() int {
	return v.size
}
