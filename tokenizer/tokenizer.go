// Copyright 2023 NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokenizer

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Options configures a Tokenizer.
type Options struct {
	// NumWords is the maximum number of words to keep, based on word
	// frequency. Only the most common NumWords-1 words are kept when
	// converting texts to sequences. Zero means no limit.
	NumWords int `yaml:"num_words"`
	// Filters contains the characters removed from the texts.
	Filters string `yaml:"filters"`
	// Lower lowercases the texts.
	Lower bool `yaml:"lower"`
	// Split is the word separator.
	Split string `yaml:"split"`
	// CharLevel treats every character as a token.
	CharLevel bool `yaml:"char_level"`
	// OOVToken, if not empty, is added to the word index and used to
	// replace out-of-vocabulary words.
	OOVToken string `yaml:"oov_token"`
	// DocumentCount is the initial document count.
	DocumentCount int `yaml:"document_count"`
}

// DefaultOptions returns the default tokenizer options.
func DefaultOptions() Options {
	return Options{
		Filters: DefaultFilters,
		Lower:   true,
		Split:   DefaultSplit,
	}
}

// WordCount is a word along with the number of times it occurred.
type WordCount struct {
	Word  string
	Count int
}

// Tokenizer learns a word vocabulary from texts and converts texts into
// sequences of word indices or into document matrices.
//
// A Tokenizer is not safe for concurrent use.
type Tokenizer struct {
	opts     Options
	splitter *wordSplitter

	wordCounts map[string]int
	// wordOrder records the order in which words were first seen.
	wordOrder     []string
	wordDocs      map[string]int
	wordIndex     map[string]int
	indexWord     map[int]string
	indexDocs     map[int]int
	documentCount int
	// stale is set when the word index lags behind the word counts.
	stale    bool
	rebuilds int
}

// New returns a new Tokenizer with the given options.
func New(opts Options) *Tokenizer {
	return &Tokenizer{
		opts:          opts,
		splitter:      newWordSplitter(opts.Filters, opts.Lower, opts.Split),
		wordCounts:    make(map[string]int),
		wordDocs:      make(map[string]int),
		wordIndex:     make(map[string]int),
		indexWord:     make(map[int]string),
		indexDocs:     make(map[int]int),
		documentCount: opts.DocumentCount,
	}
}

// Options returns the options the tokenizer was created with.
func (t *Tokenizer) Options() Options {
	return t.opts
}

// FitOnTexts updates the internal vocabulary from a list of texts.
//
// Each text counts as one document. The word index is rebuilt on the next
// read: words are ranked by count, ties keep the order in which words were
// first seen, and the OOV token (if any) comes first.
func (t *Tokenizer) FitOnTexts(texts []string) {
	for _, text := range texts {
		t.documentCount++
		seq := t.sequence(text)

		seen := make(map[string]struct{}, len(seq))
		for _, w := range seq {
			if _, ok := t.wordCounts[w]; !ok {
				t.wordOrder = append(t.wordOrder, w)
			}
			t.wordCounts[w]++
			if _, ok := seen[w]; !ok {
				seen[w] = struct{}{}
				t.wordDocs[w]++
			}
		}
	}
	t.stale = true
}

// FitOnSequences updates the document statistics from a list of sequences
// of word indices. It is required before using SequencesToMatrix in tfidf
// mode if FitOnTexts was never called.
func (t *Tokenizer) FitOnSequences(sequences [][]int) {
	t.ensureIndex()
	t.documentCount += len(sequences)
	for _, seq := range sequences {
		seen := make(map[int]struct{}, len(seq))
		for _, i := range seq {
			if _, ok := seen[i]; ok {
				continue
			}
			seen[i] = struct{}{}
			t.indexDocs[i]++
		}
	}
}

func (t *Tokenizer) ensureIndex() {
	if t.stale {
		t.rebuildIndex()
	}
}

func (t *Tokenizer) rebuildIndex() {
	t.stale = false
	t.rebuilds++

	wcounts := make([]WordCount, len(t.wordOrder))
	for i, w := range t.wordOrder {
		wcounts[i] = WordCount{Word: w, Count: t.wordCounts[w]}
	}
	sort.SliceStable(wcounts, func(i, j int) bool {
		return wcounts[i].Count > wcounts[j].Count
	})

	vocab := make([]string, 0, len(wcounts)+1)
	if t.opts.OOVToken != "" {
		vocab = append(vocab, t.opts.OOVToken)
	}
	for _, wc := range wcounts {
		vocab = append(vocab, wc.Word)
	}

	// A word equal to the OOV token takes the later index.
	t.wordIndex = make(map[string]int, len(vocab))
	for i, w := range vocab {
		t.wordIndex[w] = i + 1
	}
	t.indexWord = make(map[int]string, len(t.wordIndex))
	for w, i := range t.wordIndex {
		t.indexWord[i] = w
	}
	for w, c := range t.wordDocs {
		t.indexDocs[t.wordIndex[w]] = c
	}

	log.Trace().
		Int("documents", t.documentCount).
		Int("words", len(t.wordOrder)).
		Msg("tokenizer vocabulary rebuilt")
}

// sequence converts a text into its tokens, according to the options.
func (t *Tokenizer) sequence(text string) []string {
	if t.opts.CharLevel {
		return t.splitter.chars(text)
	}
	return t.splitter.Split(text)
}

// TextsToSequences transforms each text into a sequence of word indices.
//
// Only words known by the tokenizer are taken into account. When NumWords
// is set, only the top NumWords-1 words are kept. Discarded words are
// replaced by the OOV token index if an OOV token is configured.
func (t *Tokenizer) TextsToSequences(texts []string) [][]int {
	t.ensureIndex()
	oovIndex, hasOOV := t.oovIndex()
	result := make([][]int, len(texts))
	for n, text := range texts {
		seq := t.sequence(text)
		vect := make([]int, 0, len(seq))
		for _, w := range seq {
			i, ok := t.wordIndex[w]
			switch {
			case ok && t.opts.NumWords > 0 && i >= t.opts.NumWords:
				if hasOOV {
					vect = append(vect, oovIndex)
				}
			case ok:
				vect = append(vect, i)
			case hasOOV:
				vect = append(vect, oovIndex)
			}
		}
		result[n] = vect
	}
	return result
}

// SequencesToTexts transforms each sequence of word indices back into a
// text, joining the words with a single space.
func (t *Tokenizer) SequencesToTexts(sequences [][]int) []string {
	t.ensureIndex()
	oovIndex, hasOOV := t.oovIndex()
	oovWord := t.indexWord[oovIndex]

	result := make([]string, len(sequences))
	for n, seq := range sequences {
		vect := make([]string, 0, len(seq))
		for _, num := range seq {
			word, ok := t.indexWord[num]
			switch {
			case ok && t.opts.NumWords > 0 && num >= t.opts.NumWords:
				if hasOOV {
					vect = append(vect, oovWord)
				}
			case ok:
				vect = append(vect, word)
			case hasOOV:
				vect = append(vect, oovWord)
			}
		}
		result[n] = strings.Join(vect, " ")
	}
	return result
}

func (t *Tokenizer) oovIndex() (int, bool) {
	if t.opts.OOVToken == "" {
		return 0, false
	}
	i, ok := t.wordIndex[t.opts.OOVToken]
	return i, ok
}

// DocumentCount returns the number of documents the tokenizer was fit on.
func (t *Tokenizer) DocumentCount() int {
	return t.documentCount
}

// WordCounts returns the number of occurrences of each word, in the order
// in which the words were first seen.
func (t *Tokenizer) WordCounts() []WordCount {
	out := make([]WordCount, len(t.wordOrder))
	for i, w := range t.wordOrder {
		out[i] = WordCount{Word: w, Count: t.wordCounts[w]}
	}
	return out
}

// WordDocs returns, for each word, the number of documents it appeared in.
func (t *Tokenizer) WordDocs() map[string]int {
	out := make(map[string]int, len(t.wordDocs))
	for w, c := range t.wordDocs {
		out[w] = c
	}
	return out
}

// WordIndex returns the mapping from words to their 1-based index.
func (t *Tokenizer) WordIndex() map[string]int {
	t.ensureIndex()
	out := make(map[string]int, len(t.wordIndex))
	for w, i := range t.wordIndex {
		out[w] = i
	}
	return out
}

// IndexWord returns the word with the given index.
func (t *Tokenizer) IndexWord(i int) (string, bool) {
	t.ensureIndex()
	w, ok := t.indexWord[i]
	return w, ok
}

// IndexDocs returns, for each word index, the number of documents it
// appeared in.
func (t *Tokenizer) IndexDocs() map[int]int {
	t.ensureIndex()
	out := make(map[int]int, len(t.indexDocs))
	for i, c := range t.indexDocs {
		out[i] = c
	}
	return out
}

// VocabularySize returns the number of entries in the word index,
// including the OOV token.
func (t *Tokenizer) VocabularySize() int {
	t.ensureIndex()
	return len(t.wordIndex)
}
