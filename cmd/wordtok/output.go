// Copyright 2023 NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/nlpodyssey/wordtok/tokenizer"
)

// printVocabulary writes the first entries of the word index as a table.
func printVocabulary(w io.Writer, tk *tokenizer.Tokenizer, top int) {
	counts := make(map[string]int)
	for _, wc := range tk.WordCounts() {
		counts[wc.Word] = wc.Count
	}
	docs := tk.IndexDocs()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"Index", "Word", "Count", "Documents"})

	size := tk.VocabularySize()
	rows := 0
	// The word index may have gaps when the OOV token is also a word.
	for i := 1; i <= size+1 && (top <= 0 || rows < top); i++ {
		word, ok := tk.IndexWord(i)
		if !ok {
			continue
		}
		t.AppendRow(table.Row{i, word, counts[word], docs[i]})
		rows++
	}

	t.AppendFooter(table.Row{"", "Total", fmt.Sprintf("%d words", size), fmt.Sprintf("%d docs", tk.DocumentCount())})
	t.Render()
}

// writeSequences prints the words of each input line, separated by spaces.
// Lines may be of any length.
func writeSequences(r io.Reader, w io.Writer, opts tokenizer.Options) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("error reading standard input: %w", err)
		}
		if line == "" && err == io.EOF {
			return nil
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		words := tokenizer.TextToWordSequence(line, opts.Filters, opts.Lower, opts.Split)
		if _, werr := fmt.Fprintln(w, strings.Join(words, " ")); werr != nil {
			return werr
		}
		if err == io.EOF {
			return nil
		}
	}
}
