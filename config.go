// Copyright 2023 NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wordtok

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/nlpodyssey/wordtok/corpus"
	"github.com/nlpodyssey/wordtok/tokenizer"
	"gopkg.in/yaml.v3"
)

// Config contains the settings of a run.
type Config struct {
	// TrainPath is the location (path or URL) of the training CSV file.
	TrainPath string `yaml:"train_path"`
	// TestPath is the location (path or URL) of the test CSV file.
	TestPath string `yaml:"test_path"`
	// TextColumn is the name of the column holding the texts.
	TextColumn string `yaml:"text_column"`
	// Delimiter is the CSV field delimiter.
	Delimiter string `yaml:"delimiter"`
	// CacheDir is where remote files are downloaded.
	CacheDir string `yaml:"cache_dir"`
	// AccessToken is sent as a bearer token when downloading remote files.
	AccessToken string `yaml:"access_token"`
	// Refresh downloads remote files again even if they are cached.
	Refresh bool `yaml:"refresh"`
	// Strategy is the fitting strategy (incremental or batch).
	Strategy Strategy `yaml:"strategy"`
	// MatrixMode is the mode used to encode each document while fitting.
	MatrixMode tokenizer.Mode `yaml:"matrix_mode"`
	// Tokenizer contains the tokenizer options.
	Tokenizer tokenizer.Options `yaml:"tokenizer"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		TextColumn: corpus.DefaultColumn,
		Delimiter:  ",",
		CacheDir:   filepath.Join(os.TempDir(), "wordtok"),
		Strategy:   Incremental,
		MatrixMode: tokenizer.ModeBinary,
		Tokenizer:  tokenizer.DefaultOptions(),
	}
}

// LoadConfig reads a YAML configuration file. Values missing from the file
// keep their defaults.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("error reading configuration file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling configuration file: %w", err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.TrainPath == "" {
		return errors.New("missing train path")
	}
	if c.TestPath == "" {
		return errors.New("missing test path")
	}
	if c.TextColumn == "" {
		return errors.New("missing text column")
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("invalid delimiter %q: must be a single character", c.Delimiter)
	}
	if _, err := ParseStrategy(string(c.Strategy)); err != nil {
		return err
	}
	if _, err := tokenizer.ParseMode(string(c.MatrixMode)); err != nil {
		return err
	}
	if c.Tokenizer.Split == "" {
		return errors.New("tokenizer split must not be empty")
	}
	if c.Tokenizer.NumWords < 0 {
		return fmt.Errorf("invalid tokenizer num_words %d: must be >= 0", c.Tokenizer.NumWords)
	}
	return nil
}

// corpusOptions returns the corpus loading options derived from the config.
func (c Config) corpusOptions() []corpus.Option {
	delim, _ := utf8.DecodeRuneInString(c.Delimiter)
	return []corpus.Option{
		corpus.WithDelimiter(delim),
		corpus.WithCacheDir(c.CacheDir),
		corpus.WithAccessToken(c.AccessToken),
		corpus.WithOverwrite(c.Refresh),
	}
}
