package words

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func wordServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		length, err := strconv.Atoi(r.URL.Query().Get("length"))
		if err != nil {
			http.Error(w, "bad length", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["` + strings.Repeat("a", length) + `"]`))
	}))
}

func TestFetchWordAndMeaning(t *testing.T) {
	ws := wordServer(t)
	defer ws.Close()

	ms := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"word":"aaaaa","meanings":[{"partOfSpeech":"noun","definitions":[{"definition":"many a"}]}]}]`))
	}))
	defer ms.Close()

	p := NewProvider(ws.Client(), ws.URL, ms.URL, 5, 5, zap.NewNop())
	info, err := p.FetchWordAndMeaning(context.Background())
	require.NoError(t, err)
	require.Equal(t, "aaaaa", info.Word)
	require.Len(t, info.Meanings, 1)
	require.Equal(t, "noun", info.Meanings[0].PartOfSpeech)
}

func TestWordLengthStaysInRange(t *testing.T) {
	ws := wordServer(t)
	defer ws.Close()
	ms := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ms.Close()

	p := NewProvider(ws.Client(), ws.URL, ms.URL, 5, 12, zap.NewNop())
	for i := 0; i < 50; i++ {
		info, err := p.FetchWordAndMeaning(context.Background())
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(info.Word), 5)
		require.LessOrEqual(t, len(info.Word), 12)
	}
}

func TestMeaningFailureKeepsWord(t *testing.T) {
	ws := wordServer(t)
	defer ws.Close()

	ms := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no definitions", http.StatusNotFound)
	}))
	defer ms.Close()

	p := NewProvider(ws.Client(), ws.URL, ms.URL, 7, 7, zap.NewNop())
	info, err := p.FetchWordAndMeaning(context.Background())
	require.NoError(t, err, "a missing meaning must not fail the fetch")
	require.Len(t, info.Word, 7, "the original word must be kept, never refetched")
	require.Empty(t, info.Meanings)
}

func TestWordFailureIsFatal(t *testing.T) {
	ws := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer ws.Close()

	p := NewProvider(ws.Client(), ws.URL, "http://127.0.0.1:0", 5, 5, zap.NewNop())
	_, err := p.FetchWordAndMeaning(context.Background())
	require.ErrorIs(t, err, ErrWordFetch)
}
