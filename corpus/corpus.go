// Copyright 2023 NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package corpus loads text corpora from CSV files.
package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/nlpodyssey/wordtok/downloader"
	"github.com/rs/zerolog/log"
)

// DefaultColumn is the name of the column holding the texts.
const DefaultColumn = "text"

const utf8BOM = "\ufeff"

var (
	// ErrColumnNotFound is returned when the requested column is missing.
	ErrColumnNotFound = errors.New("column not found")
	// ErrEmptyFile is returned for a file without a header row.
	ErrEmptyFile = errors.New("empty file")
)

// Corpus is an ordered sequence of texts, in file row order.
type Corpus []string

// Dataset holds the train and test splits of a corpus.
type Dataset struct {
	Train Corpus
	Test  Corpus
}

type options struct {
	delimiter        rune
	cacheDir         string
	accessToken      string
	overwriteIfExist bool
}

// Option configures how a corpus is loaded.
type Option func(*options)

// WithDelimiter sets the field delimiter (default ',').
func WithDelimiter(r rune) Option {
	return func(o *options) {
		o.delimiter = r
	}
}

// WithCacheDir sets the directory where remote files are downloaded.
func WithCacheDir(dir string) Option {
	return func(o *options) {
		o.cacheDir = dir
	}
}

// WithAccessToken sets the bearer token sent when fetching remote files.
func WithAccessToken(token string) Option {
	return func(o *options) {
		o.accessToken = token
	}
}

// WithOverwrite forces remote files to be downloaded again.
func WithOverwrite(overwrite bool) Option {
	return func(o *options) {
		o.overwriteIfExist = overwrite
	}
}

func newOptions(opts []Option) options {
	o := options{
		delimiter: ',',
		cacheDir:  os.TempDir(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LoadDataset loads the train and test splits, reading the given column
// from both files. The test split is loaded first.
func LoadDataset(ctx context.Context, trainPath, testPath, column string, opts ...Option) (Dataset, error) {
	test, err := Load(ctx, testPath, column, opts...)
	if err != nil {
		return Dataset{}, err
	}
	train, err := Load(ctx, trainPath, column, opts...)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Train: train, Test: test}, nil
}

// Load reads a CSV file and returns the values of the given column.
//
// The location may be a local path or an HTTP(S) URL; remote files are
// downloaded into the cache directory first.
func Load(ctx context.Context, location, column string, opts ...Option) (_ Corpus, err error) {
	o := newOptions(opts)

	filename := location
	if downloader.IsRemote(location) {
		filename, err = downloader.Fetch(ctx, location, o.cacheDir, o.overwriteIfExist, o.accessToken)
		if err != nil {
			return nil, fmt.Errorf("fetching corpus %s: %w", location, err)
		}
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loading corpus from file %s: %w", filename, err)
	}
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = fmt.Errorf("closing corpus file %s: %w", filename, e)
		}
	}()

	c, err := read(f, column, o)
	if err != nil {
		return nil, fmt.Errorf("loading corpus from file %s: %w", filename, err)
	}
	log.Debug().Str("file", filename).Str("column", column).Int("rows", len(c)).Msg("corpus loaded")
	return c, nil
}

// Read reads CSV data from r and returns the values of the given column.
func Read(r io.Reader, column string, opts ...Option) (Corpus, error) {
	return read(r, column, newOptions(opts))
}

func read(r io.Reader, column string, o options) (Corpus, error) {
	cr := csv.NewReader(r)
	cr.Comma = o.delimiter
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV records: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	if !contains(header, column) {
		return nil, fmt.Errorf("%w: %q (available columns: %s)", ErrColumnNotFound, column, strings.Join(header, ", "))
	}
	if len(records) == 1 {
		return Corpus{}, nil
	}

	df := dataframe.LoadRecords(
		records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("building data frame: %w", df.Err)
	}

	col := df.Col(column)
	if col.Err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrColumnNotFound, column, col.Err)
	}
	return Corpus(col.Records()), nil
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
