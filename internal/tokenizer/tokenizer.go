// internal/tokenizer/tokenizer.go
// Package tokenizer encodes text for BERT cased models. Normalization,
// pre-tokenization, WordPiece and [CLS]/[SEP] framing run on the sugarme
// tokenizer pipeline configured the way bert-base-cased is.
package tokenizer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/model/wordpiece"
	"github.com/sugarme/tokenizer/normalizer"
	"github.com/sugarme/tokenizer/pretokenizer"
	"github.com/sugarme/tokenizer/processor"
)

// DefaultMaxCharsPerWord is the longest word WordPiece will try to split;
// longer words become [UNK].
const DefaultMaxCharsPerWord = 100

const continuationPrefix = "##"

// Encoding is the model input for one text
type Encoding struct {
	IDs           []int32  `json:"input_ids" yaml:"input_ids"`
	TypeIDs       []int32  `json:"token_type_ids" yaml:"token_type_ids"`
	AttentionMask []int32  `json:"attention_mask" yaml:"attention_mask"`
	Tokens        []string `json:"tokens" yaml:"tokens"`
}

// Len returns the number of tokens including [CLS], [SEP] and padding
func (e Encoding) Len() int {
	return len(e.IDs)
}

// Tokenizer turns text into WordPiece ids
type Tokenizer struct {
	vocab  *Vocab
	engine *tk.Tokenizer

	padID int32
	clsID int32
	sepID int32
}

// New creates a Tokenizer over vocab, which must contain [PAD], [UNK],
// [CLS] and [SEP]
func New(vocab *Vocab) (*Tokenizer, error) {
	t := &Tokenizer{vocab: vocab}

	for token, dst := range map[string]*int32{
		PadToken: &t.padID,
		UnkToken: new(int32),
		ClsToken: &t.clsID,
		SepToken: &t.sepID,
	} {
		id, ok := vocab.ID(token)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingSpecialToken, token)
		}
		*dst = id
	}

	wp := wordpiece.NewWordPieceBuilder().
		Vocab(&vocab.ids).
		UnkToken(UnkToken).
		ContinuingSubwordPrefix(continuationPrefix).
		MaxInputCharsPerWord(DefaultMaxCharsPerWord).
		Build()

	engine := tk.NewTokenizer(wp)
	// clean text, keep case, isolate CJK, keep accents
	engine.WithNormalizer(normalizer.NewBertNormalizer(true, false, true, false))
	engine.WithPreTokenizer(pretokenizer.NewBertPreTokenizer())
	engine.WithPostProcessor(processor.NewBertProcessing(
		processor.PostToken{Id: int(t.sepID), Value: SepToken},
		processor.PostToken{Id: int(t.clsID), Value: ClsToken},
	))

	var special []tk.AddedToken
	for _, token := range []string{PadToken, UnkToken, ClsToken, SepToken, MaskToken} {
		if _, ok := vocab.ID(token); ok {
			special = append(special, tk.NewAddedToken(token, true))
		}
	}
	engine.AddSpecialTokens(special)

	t.engine = engine
	return t, nil
}

// Load reads vocab.txt at path and builds a Tokenizer from it
func Load(path string) (*Tokenizer, error) {
	vocab, err := LoadVocab(path)
	if err != nil {
		return nil, err
	}
	return New(vocab)
}

// Vocab returns the underlying vocabulary
func (t *Tokenizer) Vocab() *Vocab {
	return t.vocab
}

// PadID returns the id used to pad batches
func (t *Tokenizer) PadID() int32 {
	return t.padID
}

// Encode tokenizes text and frames it as [CLS] tokens [SEP]
func (t *Tokenizer) Encode(text string) (Encoding, error) {
	enc, err := t.encode(text)
	if err != nil {
		return Encoding{}, err
	}
	return convert(enc), nil
}

// EncodeBatch encodes every text and right-pads the rows with [PAD] to the
// longest one. Padding has attention mask 0.
func (t *Tokenizer) EncodeBatch(texts []string) ([]Encoding, error) {
	rows := make([]tk.Encoding, 0, len(texts))
	for _, text := range texts {
		enc, err := t.encode(text)
		if err != nil {
			return nil, err
		}
		rows = append(rows, *enc)
	}

	rows = tk.PadEncodings(rows, tk.PaddingParams{
		Strategy:  *tk.NewPaddingStrategy(tk.WithBatchLongest()),
		Direction: tk.Right,
		PadId:     int(t.padID),
		PadTypeId: 0,
		PadToken:  PadToken,
	})

	out := make([]Encoding, len(rows))
	for i := range rows {
		out[i] = convert(&rows[i])
	}
	return out, nil
}

func (t *Tokenizer) encode(text string) (*tk.Encoding, error) {
	text = clean(text)
	if text == "" {
		return tk.NewEncoding(
			[]int{int(t.clsID), int(t.sepID)},
			[]int{0, 0},
			[]string{ClsToken, SepToken},
			[][]int{{0, 0}, {0, 0}},
			[]int{1, 1},
			[]int{1, 1},
			[]tk.Encoding{},
			tk.WithWordsEncodingOpt([]int{-1, -1}),
		), nil
	}

	enc, err := t.engine.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %q: %w", text, err)
	}
	return enc, nil
}

// clean removes NUL, U+FFFD and every rune of the Unicode "other" categories
// (Cc, Cf, Cn, Co, Cs) except tab, newline and carriage return, then collapses
// whitespace runs into single spaces.
func clean(text string) string {
	kept := strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case r == 0 || r == utf8.RuneError || isOther(r):
			return -1
		}
		return r
	}, text)
	return strings.Join(strings.Fields(kept), " ")
}

// isOther reports control, format, private-use, surrogate and unassigned runes
func isOther(r rune) bool {
	return !unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z)
}

func convert(enc *tk.Encoding) Encoding {
	return Encoding{
		IDs:           toInt32(enc.GetIds()),
		TypeIDs:       toInt32(enc.GetTypeIds()),
		AttentionMask: toInt32(enc.GetAttentionMask()),
		Tokens:        enc.GetTokens(),
	}
}

func toInt32(values []int) []int32 {
	out := make([]int32, len(values))
	for i, v := range values {
		out[i] = int32(v)
	}
	return out
}
