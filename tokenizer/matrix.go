// Copyright 2023 NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokenizer

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Mode is the vectorization mode used to build document matrices.
type Mode string

const (
	// ModeBinary marks whether a word occurs in the document.
	ModeBinary Mode = "binary"
	// ModeCount is the number of occurrences of a word in the document.
	ModeCount Mode = "count"
	// ModeFreq is the number of occurrences of a word divided by the
	// document length.
	ModeFreq Mode = "freq"
	// ModeTFIDF is the term frequency-inverse document frequency weight.
	ModeTFIDF Mode = "tfidf"
)

var (
	// ErrUnknownMode is returned for an unsupported vectorization mode.
	ErrUnknownMode = errors.New("unknown vectorization mode")
	// ErrNoDimension is returned when the matrix width cannot be determined.
	ErrNoDimension = errors.New("specify a dimension (NumWords option), or fit on some text data first")
	// ErrNotFitted is returned when tfidf weights are requested before fitting.
	ErrNotFitted = errors.New("fit the tokenizer on some data before using tfidf mode")
)

// ParseMode converts a string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeBinary, ModeCount, ModeFreq, ModeTFIDF:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// TextsToMatrix converts a list of texts into a document matrix, with one
// row per text and one column per word index.
func (t *Tokenizer) TextsToMatrix(texts []string, mode Mode) (*mat.Dense, error) {
	return t.SequencesToMatrix(t.TextsToSequences(texts), mode)
}

// SequencesToMatrix converts a list of sequences of word indices into a
// document matrix.
//
// The number of columns is NumWords if set, otherwise the size of the word
// index plus one. Indices beyond the width are ignored. An empty list of
// sequences yields an empty matrix.
func (t *Tokenizer) SequencesToMatrix(sequences [][]int, mode Mode) (*mat.Dense, error) {
	t.ensureIndex()
	numWords := t.opts.NumWords
	if numWords <= 0 {
		if len(t.wordIndex) == 0 {
			return nil, ErrNoDimension
		}
		numWords = len(t.wordIndex) + 1
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if mode == ModeTFIDF && t.documentCount == 0 {
		return nil, ErrNotFitted
	}

	if len(sequences) == 0 {
		return &mat.Dense{}, nil
	}

	x := mat.NewDense(len(sequences), numWords, nil)
	for i, seq := range sequences {
		if len(seq) == 0 {
			continue
		}
		counts := make(map[int]int, len(seq))
		for _, j := range seq {
			if j < 0 || j >= numWords {
				continue
			}
			counts[j]++
		}
		for j, c := range counts {
			x.Set(i, j, t.weight(mode, j, c, len(seq)))
		}
	}
	return x, nil
}

func (t *Tokenizer) weight(mode Mode, j, count, seqLen int) float64 {
	switch mode {
	case ModeCount:
		return float64(count)
	case ModeFreq:
		return float64(count) / float64(seqLen)
	case ModeTFIDF:
		tf := 1 + math.Log(float64(count))
		idf := math.Log(1 + float64(t.documentCount)/float64(1+t.indexDocs[j]))
		return tf * idf
	default:
		return 1
	}
}
