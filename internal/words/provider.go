// Package words adapts the external random-word and dictionary services into
// a single fetch call for round initialization.
package words

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrWordFetch wraps any failure to obtain the word itself. Meaning lookups
// never produce this; they degrade to an empty meaning list.
var ErrWordFetch = errors.New("words: word fetch failed")

type Definition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example,omitempty"`
	Synonyms   []string `json:"synonyms,omitempty"`
	Antonyms   []string `json:"antonyms,omitempty"`
}

type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
}

// WordInfo is what a round is built from: the word and its dictionary
// meanings, which may legitimately be empty.
type WordInfo struct {
	Word     string    `json:"word"`
	Meanings []Meaning `json:"meaning"`
}

type Provider struct {
	client      *http.Client
	wordBase    string
	meaningBase string
	minLen      int
	maxLen      int
	logger      *zap.Logger
}

func NewProvider(client *http.Client, wordBase, meaningBase string, minLen, maxLen int, logger *zap.Logger) *Provider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Provider{
		client:      client,
		wordBase:    strings.TrimRight(wordBase, "/"),
		meaningBase: strings.TrimRight(meaningBase, "/"),
		minLen:      minLen,
		maxLen:      maxLen,
		logger:      logger,
	}
}

// FetchWordAndMeaning picks a length within the configured range, fetches one
// word of that length, then looks up its meanings best-effort. A failed word
// fetch fails the call; a failed meaning lookup keeps the word and returns it
// with no meanings. The word is never swapped out because its meaning was
// missing.
func (p *Provider) FetchWordAndMeaning(ctx context.Context) (WordInfo, error) {
	word, err := p.fetchWord(ctx)
	if err != nil {
		return WordInfo{}, err
	}

	meanings, err := p.fetchMeanings(ctx, word)
	if err != nil {
		p.logger.Warn("meaning lookup failed, continuing without definitions",
			zap.String("word", word), zap.Error(err))
		meanings = []Meaning{}
	}
	return WordInfo{Word: word, Meanings: meanings}, nil
}

func (p *Provider) fetchWord(ctx context.Context) (string, error) {
	length := p.minLen
	if p.maxLen > p.minLen {
		length += rand.IntN(p.maxLen - p.minLen + 1)
	}

	u := fmt.Sprintf("%s/word?length=%d", p.wordBase, length)
	var body []string
	if err := p.getJSON(ctx, u, &body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWordFetch, err)
	}
	if len(body) == 0 || body[0] == "" {
		return "", fmt.Errorf("%w: empty response", ErrWordFetch)
	}
	return body[0], nil
}

func (p *Provider) fetchMeanings(ctx context.Context, word string) ([]Meaning, error) {
	u := fmt.Sprintf("%s/%s", p.meaningBase, url.PathEscape(strings.ToLower(word)))
	var body []struct {
		Word     string    `json:"word"`
		Meanings []Meaning `json:"meanings"`
	}
	if err := p.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return []Meaning{}, nil
	}
	return body[0].Meanings, nil
}

func (p *Provider) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, u)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
