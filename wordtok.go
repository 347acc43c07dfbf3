// Copyright 2023 NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wordtok

import (
	"context"
	"fmt"
	"time"

	"github.com/nlpodyssey/wordtok/corpus"
	"github.com/nlpodyssey/wordtok/tokenizer"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

// Strategy is the way a tokenizer is fit on a corpus.
type Strategy string

const (
	// Incremental fits the tokenizer one document at a time, encoding
	// each document right after it has been fit.
	Incremental Strategy = "incremental"
	// Batch fits the tokenizer on the whole corpus at once.
	Batch Strategy = "batch"
)

// ParseStrategy converts a string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case Incremental, Batch:
		return st, nil
	default:
		return "", fmt.Errorf("unknown fitting strategy %q", s)
	}
}

// FitOptions configures Fit.
type FitOptions struct {
	Strategy Strategy
	// Mode is the matrix mode used to encode each document with the
	// incremental strategy.
	Mode tokenizer.Mode
}

// Fit fits the tokenizer on the given texts and returns the same tokenizer.
//
// Both strategies lead to the same final vocabulary. When debug logging is
// enabled, the incremental one also encodes every document after fitting
// it and logs its statistics.
func Fit(ctx context.Context, tk *tokenizer.Tokenizer, texts []string, opts FitOptions) (*tokenizer.Tokenizer, error) {
	switch opts.Strategy {
	case Batch:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tk.FitOnTexts(texts)
		return tk, nil
	case Incremental, "":
		return fitIncremental(ctx, tk, texts, opts.Mode)
	default:
		return nil, fmt.Errorf("unknown fitting strategy %q", opts.Strategy)
	}
}

func fitIncremental(ctx context.Context, tk *tokenizer.Tokenizer, texts []string, mode tokenizer.Mode) (*tokenizer.Tokenizer, error) {
	if mode == "" {
		mode = tokenizer.ModeBinary
	}
	if _, err := tokenizer.ParseMode(string(mode)); err != nil {
		return nil, err
	}
	// Encoding only feeds the debug log; skipping it keeps the fit linear.
	debug := log.Debug().Enabled()

	for i, text := range texts {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		doc := []string{text}
		tk.FitOnTexts(doc)
		if !debug {
			continue
		}
		if tk.VocabularySize() == 0 && tk.Options().NumWords == 0 {
			log.Debug().Int("document", i).Msg("empty vocabulary, document not encoded")
			continue
		}
		encoded, err := tk.TextsToMatrix(doc, mode)
		if err != nil {
			return nil, fmt.Errorf("encoding document %d: %w", i, err)
		}

		log.Debug().
			Int("document", i).
			Int("document_count", tk.DocumentCount()).
			Int("vocabulary_size", tk.VocabularySize()).
			Int("encoded_terms", nonZero(encoded)).
			Msg("document fit")
	}
	return tk, nil
}

func nonZero(m *mat.Dense) int {
	r, c := m.Dims()
	n := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if m.At(i, j) != 0 {
				n++
			}
		}
	}
	return n
}

// Result is the outcome of Run.
type Result struct {
	Dataset   corpus.Dataset
	Tokenizer *tokenizer.Tokenizer
	// TrainWords contains the word sequence of each training text.
	TrainWords [][]string
}

// Run loads the dataset, fits a new tokenizer on the training texts, and
// splits each training text into its words.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	start := time.Now()
	ds, err := corpus.LoadDataset(ctx, cfg.TrainPath, cfg.TestPath, cfg.TextColumn, cfg.corpusOptions()...)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("train", len(ds.Train)).
		Int("test", len(ds.Test)).
		Dur("elapsed", time.Since(start)).
		Msg("dataset loaded")

	tk, err := Fit(ctx, tokenizer.New(cfg.Tokenizer), ds.Train, FitOptions{
		Strategy: cfg.Strategy,
		Mode:     cfg.MatrixMode,
	})
	if err != nil {
		return nil, fmt.Errorf("fitting tokenizer: %w", err)
	}
	log.Debug().
		Int("documents", tk.DocumentCount()).
		Int("vocabulary_size", tk.VocabularySize()).
		Msg("tokenizer fit")

	opts := cfg.Tokenizer
	words := make([][]string, len(ds.Train))
	for i, text := range ds.Train {
		words[i] = tokenizer.TextToWordSequence(text, opts.Filters, opts.Lower, opts.Split)
	}

	return &Result{
		Dataset:    ds,
		Tokenizer:  tk,
		TrainWords: words,
	}, nil
}
