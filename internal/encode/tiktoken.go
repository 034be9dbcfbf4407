package encode

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/ppiankov/factprep/internal/cache"
)

// TiktokenTokenizer implements the Tokenizer contract with a BPE encoding
// from tiktoken. Per-text token sequences are optionally cached; evidence
// passages repeat across strategies and splits, so the cache pays off fast.
type TiktokenTokenizer struct {
	encoding string
	padID    int
	store    cache.Cache // nil disables caching

	once    sync.Once
	enc     *tiktoken.Tiktoken
	initErr error
}

// NewTiktokenTokenizer creates a tokenizer for the named tiktoken encoding
// (e.g. "cl100k_base"). store may be nil to disable token caching.
func NewTiktokenTokenizer(encoding string, padID int, store cache.Cache) *TiktokenTokenizer {
	return &TiktokenTokenizer{
		encoding: encoding,
		padID:    padID,
		store:    store,
	}
}

// init lazily loads the encoding; tiktoken may download data on first use
func (t *TiktokenTokenizer) init() error {
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(t.encoding)
		if err != nil {
			t.initErr = fmt.Errorf("init tiktoken encoding %s: %w", t.encoding, err)
			return
		}
		t.enc = enc
	})
	return t.initErr
}

// Tokenize encodes one or two segments into a fixed-length Input
func (t *TiktokenTokenizer) Tokenize(textA, textB string, maxLength int) (Input, error) {
	if err := t.init(); err != nil {
		return Input{}, err
	}

	idsA := t.encode(textA)
	var idsB []int
	if textB != "" {
		idsB = t.encode(textB)
	}

	return BuildInput(idsA, idsB, maxLength, t.padID), nil
}

// encode returns raw (unpadded) token ids for a text, via the cache when
// one is configured
func (t *TiktokenTokenizer) encode(text string) []int {
	if t.store == nil {
		return t.enc.Encode(text, nil, nil)
	}

	key := cache.TokenKey(t.encoding, text)
	if data, found := t.store.Get(key); found {
		var ids []int
		if err := json.Unmarshal(data, &ids); err == nil {
			return ids
		}
	}

	ids := t.enc.Encode(text, nil, nil)
	if data, err := json.Marshal(ids); err == nil {
		_ = t.store.Set(key, data, 0)
	}
	return ids
}
