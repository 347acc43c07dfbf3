// Copyright 2023 NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokenizer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultFilters is the set of characters removed from texts before splitting.
// It contains all ASCII punctuation except the apostrophe, plus tab and new line.
const DefaultFilters = "!\"#$%&()*+,-./:;<=>?@[\\]^_`{|}~\t\n"

// DefaultSplit is the default word separator.
const DefaultSplit = " "

// TextToWordSequence converts a text into a sequence of words.
//
// When lower is true the text is lowercased first. Every rune of filters is
// then replaced by split, and the text is split on split. Empty items are
// dropped. An empty split falls back to splitting on white space.
func TextToWordSequence(text, filters string, lower bool, split string) []string {
	return newWordSplitter(filters, lower, split).Split(text)
}

// wordSplitter holds the prepared state of TextToWordSequence, so that
// a tokenizer can reuse it across many texts.
type wordSplitter struct {
	filters map[rune]struct{}
	lower   bool
	split   string
	caser   cases.Caser
}

func newWordSplitter(filters string, lower bool, split string) *wordSplitter {
	fs := make(map[rune]struct{}, len(filters))
	for _, r := range filters {
		fs[r] = struct{}{}
	}
	return &wordSplitter{
		filters: fs,
		lower:   lower,
		split:   split,
		caser:   cases.Lower(language.Und),
	}
}

// Lower lowercases the text if the splitter is configured to do so.
func (s *wordSplitter) Lower(text string) string {
	if !s.lower {
		return text
	}
	return s.caser.String(text)
}

// Split returns the words of the text.
func (s *wordSplitter) Split(text string) []string {
	text = s.Lower(text)

	sep := s.split
	if sep == "" {
		sep = DefaultSplit
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if _, ok := s.filters[r]; ok {
			sb.WriteString(sep)
			continue
		}
		sb.WriteRune(r)
	}

	var raw []string
	if s.split == "" {
		raw = strings.Fields(sb.String())
	} else {
		raw = strings.Split(sb.String(), sep)
	}

	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	return words
}

// chars returns the characters of the text, lowercased when configured.
func (s *wordSplitter) chars(text string) []string {
	text = s.Lower(text)
	out := make([]string, 0, len(text))
	for _, r := range text {
		out = append(out, string(r))
	}
	return out
}
