// Copyright 2023 NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokenizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextToWordSequence(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		filters string
		lower   bool
		split   string
		want    []string
	}{
		{"punctuation", "Hello, World! This is-a test.", DefaultFilters, true, " ", []string{"hello", "world", "this", "is", "a", "test"}},
		{"apostrophe is kept", "Don't stop", DefaultFilters, true, " ", []string{"don't", "stop"}},
		{"no lowercasing", "Hello World", DefaultFilters, false, " ", []string{"Hello", "World"}},
		{"unicode lowercasing", "ÉCOLE Straße", DefaultFilters, true, " ", []string{"école", "straße"}},
		{"tabs and new lines", "one\ttwo\nthree", DefaultFilters, true, " ", []string{"one", "two", "three"}},
		{"custom split", "a,b;c", ",", false, ";", []string{"a", "b", "c"}},
		{"empty split", "a  b\tc", "", false, "", []string{"a", "b", "c"}},
		{"empty text", "", DefaultFilters, true, " ", []string{}},
		{"only filters", "?!...", DefaultFilters, true, " ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TextToWordSequence(tt.text, tt.filters, tt.lower, tt.split)
			assert.Equal(t, tt.want, got)
		})
	}
}

func fitted(t *testing.T, opts Options) *Tokenizer {
	t.Helper()
	tk := New(opts)
	tk.FitOnTexts([]string{"the cat sat", "the cat", "the dog"})
	return tk
}

func TestFitOnTexts(t *testing.T) {
	tk := fitted(t, DefaultOptions())

	assert.Equal(t, 3, tk.DocumentCount())
	assert.Equal(t, []WordCount{
		{Word: "the", Count: 3},
		{Word: "cat", Count: 2},
		{Word: "sat", Count: 1},
		{Word: "dog", Count: 1},
	}, tk.WordCounts())
	assert.Equal(t, map[string]int{"the": 3, "cat": 2, "sat": 1, "dog": 1}, tk.WordDocs())
	assert.Equal(t, map[string]int{"the": 1, "cat": 2, "sat": 3, "dog": 4}, tk.WordIndex())
	assert.Equal(t, map[int]int{1: 3, 2: 2, 3: 1, 4: 1}, tk.IndexDocs())
	assert.Equal(t, 4, tk.VocabularySize())

	w, ok := tk.IndexWord(4)
	assert.True(t, ok)
	assert.Equal(t, "dog", w)
	_, ok = tk.IndexWord(0)
	assert.False(t, ok)
}

func TestFitOnTextsCountsDocumentsOnce(t *testing.T) {
	tk := New(DefaultOptions())
	tk.FitOnTexts([]string{"spam spam spam", "spam eggs"})

	assert.Equal(t, map[string]int{"spam": 2, "eggs": 1}, tk.WordDocs())
	assert.Equal(t, []WordCount{{"spam", 4}, {"eggs", 1}}, tk.WordCounts())
}

func TestFitOnTextsIsIncremental(t *testing.T) {
	tk := New(DefaultOptions())
	tk.FitOnTexts([]string{"b a"})
	assert.Equal(t, map[string]int{"b": 1, "a": 2}, tk.WordIndex())

	tk.FitOnTexts([]string{"a"})
	assert.Equal(t, 2, tk.DocumentCount())
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, tk.WordIndex())
}

func TestFitOnTextsRebuildsIndexOnRead(t *testing.T) {
	tk := New(DefaultOptions())
	for i := 0; i < 100; i++ {
		tk.FitOnTexts([]string{"b a"})
	}
	tk.FitOnTexts([]string{"a"})
	assert.Zero(t, tk.rebuilds)

	assert.Equal(t, map[string]int{"a": 1, "b": 2}, tk.WordIndex())
	assert.Equal(t, 2, tk.VocabularySize())
	assert.Equal(t, [][]int{{2, 1}}, tk.TextsToSequences([]string{"b a"}))
	assert.Equal(t, map[int]int{1: 101, 2: 100}, tk.IndexDocs())
	assert.Equal(t, 1, tk.rebuilds)
}

func TestFitOnSequencesAfterFitOnTexts(t *testing.T) {
	tk := New(DefaultOptions())
	tk.FitOnTexts([]string{"a b", "a"})
	tk.FitOnSequences([][]int{{1}})

	assert.Equal(t, 3, tk.DocumentCount())
	assert.Equal(t, map[int]int{1: 3, 2: 1}, tk.IndexDocs())
}

func TestFitOnTextsInitialDocumentCount(t *testing.T) {
	opts := DefaultOptions()
	opts.DocumentCount = 10
	tk := fitted(t, opts)
	assert.Equal(t, 13, tk.DocumentCount())
}

func TestFitOnTextsCharLevel(t *testing.T) {
	opts := DefaultOptions()
	opts.CharLevel = true
	tk := New(opts)
	tk.FitOnTexts([]string{"aAb"})

	assert.Equal(t, map[string]int{"a": 1, "b": 2}, tk.WordIndex())
}

func TestFitOnTextsEmpty(t *testing.T) {
	tk := New(DefaultOptions())
	tk.FitOnTexts(nil)

	assert.Equal(t, 0, tk.DocumentCount())
	assert.Empty(t, tk.WordIndex())
}

func TestTextsToSequences(t *testing.T) {
	t.Run("unknown words are dropped", func(t *testing.T) {
		tk := fitted(t, DefaultOptions())
		got := tk.TextsToSequences([]string{"the dog sat on the mat"})
		assert.Equal(t, [][]int{{1, 4, 3, 1}}, got)
	})

	t.Run("unknown words map to the oov token", func(t *testing.T) {
		opts := DefaultOptions()
		opts.OOVToken = "<OOV>"
		tk := fitted(t, opts)
		assert.Equal(t, 1, tk.WordIndex()["<OOV>"])

		got := tk.TextsToSequences([]string{"the dog sat on the mat"})
		assert.Equal(t, [][]int{{2, 5, 4, 1, 2, 1}}, got)
	})

	t.Run("num words limit with oov token", func(t *testing.T) {
		opts := DefaultOptions()
		opts.OOVToken = "<OOV>"
		opts.NumWords = 3
		tk := fitted(t, opts)

		got := tk.TextsToSequences([]string{"the cat sat dog"})
		assert.Equal(t, [][]int{{2, 1, 1, 1}}, got)
	})

	t.Run("num words limit without oov token", func(t *testing.T) {
		opts := DefaultOptions()
		opts.NumWords = 3
		tk := fitted(t, opts)

		got := tk.TextsToSequences([]string{"the cat sat dog"})
		assert.Equal(t, [][]int{{1, 2}}, got)
	})
}

func TestSequencesToTexts(t *testing.T) {
	tk := fitted(t, DefaultOptions())
	got := tk.SequencesToTexts([][]int{{1, 4, 3}, {1, 99}, {}})
	assert.Equal(t, []string{"the dog sat", "the", ""}, got)

	opts := DefaultOptions()
	opts.OOVToken = "<OOV>"
	tk = fitted(t, opts)
	got = tk.SequencesToTexts([][]int{{2, 99}})
	assert.Equal(t, []string{"the <OOV>"}, got)
}

func TestTextsToMatrix(t *testing.T) {
	tk := fitted(t, DefaultOptions())

	t.Run("binary", func(t *testing.T) {
		m, err := tk.TextsToMatrix([]string{"the cat the"}, ModeBinary)
		require.NoError(t, err)
		r, c := m.Dims()
		assert.Equal(t, 1, r)
		assert.Equal(t, 5, c)
		assert.Equal(t, []float64{0, 1, 1, 0, 0}, m.RawRowView(0))
	})

	t.Run("count", func(t *testing.T) {
		m, err := tk.TextsToMatrix([]string{"the cat the"}, ModeCount)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 2, 1, 0, 0}, m.RawRowView(0))
	})

	t.Run("freq", func(t *testing.T) {
		m, err := tk.TextsToMatrix([]string{"the cat the"}, ModeFreq)
		require.NoError(t, err)
		assert.InDelta(t, 2.0/3.0, m.At(0, 1), 1e-12)
		assert.InDelta(t, 1.0/3.0, m.At(0, 2), 1e-12)
	})

	t.Run("tfidf", func(t *testing.T) {
		m, err := tk.TextsToMatrix([]string{"the cat the"}, ModeTFIDF)
		require.NoError(t, err)
		assert.InDelta(t, (1+math.Log(2))*math.Log(1.75), m.At(0, 1), 1e-12)
		assert.InDelta(t, math.Log(2), m.At(0, 2), 1e-12)
		assert.Zero(t, m.At(0, 3))
	})

	t.Run("one row per text", func(t *testing.T) {
		m, err := tk.TextsToMatrix([]string{"dog", "", "unknown"}, ModeBinary)
		require.NoError(t, err)
		r, _ := m.Dims()
		assert.Equal(t, 3, r)
		assert.Equal(t, 1.0, m.At(0, 4))
		assert.Equal(t, []float64{0, 0, 0, 0, 0}, m.RawRowView(1))
		assert.Equal(t, []float64{0, 0, 0, 0, 0}, m.RawRowView(2))
	})

	t.Run("no texts", func(t *testing.T) {
		m, err := tk.TextsToMatrix(nil, ModeBinary)
		require.NoError(t, err)
		r, c := m.Dims()
		assert.Zero(t, r)
		assert.Zero(t, c)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := tk.TextsToMatrix([]string{"the"}, Mode("bogus"))
		assert.ErrorIs(t, err, ErrUnknownMode)
	})
}

func TestTextsToMatrixNumWords(t *testing.T) {
	opts := DefaultOptions()
	opts.NumWords = 3
	tk := fitted(t, opts)

	m, err := tk.TextsToMatrix([]string{"the cat sat dog"}, ModeBinary)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 1}, m.RawRowView(0))
}

func TestSequencesToMatrixErrors(t *testing.T) {
	_, err := New(DefaultOptions()).SequencesToMatrix([][]int{{1}}, ModeBinary)
	assert.ErrorIs(t, err, ErrNoDimension)

	opts := DefaultOptions()
	opts.NumWords = 10
	_, err = New(opts).SequencesToMatrix([][]int{{1}}, ModeTFIDF)
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestFitOnSequences(t *testing.T) {
	opts := DefaultOptions()
	opts.NumWords = 3
	tk := New(opts)
	tk.FitOnSequences([][]int{{1, 2, 2}, {2}})

	assert.Equal(t, 2, tk.DocumentCount())
	assert.Equal(t, map[int]int{1: 1, 2: 2}, tk.IndexDocs())

	m, err := tk.SequencesToMatrix([][]int{{2}}, ModeTFIDF)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(1+2.0/3.0), m.At(0, 2), 1e-12)
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"binary", "count", "freq", "tfidf"} {
		m, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, Mode(s), m)
	}
	_, err := ParseMode("BINARY")
	assert.ErrorIs(t, err, ErrUnknownMode)
}
