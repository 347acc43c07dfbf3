// Copyright 2023 NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/nlpodyssey/wordtok"
	"github.com/nlpodyssey/wordtok/tokenizer"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

// baseConfig returns the configuration file content, or the defaults if no
// file was given.
func baseConfig(c *cli.Context) (wordtok.Config, error) {
	filename := c.String("config")
	if filename == "" {
		return wordtok.DefaultConfig(), nil
	}
	log.Debug().Str("file", filename).Msg("loading configuration")
	return wordtok.LoadConfig(filename)
}

// configFromContext builds the run configuration, letting command-line
// flags and environment variables override the configuration file.
func configFromContext(c *cli.Context) (wordtok.Config, error) {
	cfg, err := baseConfig(c)
	if err != nil {
		return wordtok.Config{}, err
	}

	overrideString(c, "train", &cfg.TrainPath)
	overrideString(c, "test", &cfg.TestPath)
	overrideString(c, "column", &cfg.TextColumn)
	overrideString(c, "delimiter", &cfg.Delimiter)
	overrideString(c, "cache-dir", &cfg.CacheDir)
	overrideString(c, "access-token", &cfg.AccessToken)
	overrideString(c, "oov-token", &cfg.Tokenizer.OOVToken)
	if c.IsSet("strategy") {
		cfg.Strategy = wordtok.Strategy(c.String("strategy"))
	}
	if c.IsSet("mode") {
		cfg.MatrixMode = tokenizer.Mode(c.String("mode"))
	}
	if c.IsSet("refresh") {
		cfg.Refresh = c.Bool("refresh")
	}
	if c.IsSet("num-words") {
		cfg.Tokenizer.NumWords = c.Int("num-words")
	}

	log.Debug().
		Str("train", cfg.TrainPath).
		Str("test", cfg.TestPath).
		Str("column", cfg.TextColumn).
		Str("strategy", string(cfg.Strategy)).
		Str("mode", string(cfg.MatrixMode)).
		Msg("configuration")

	return cfg, cfg.Validate()
}

func overrideString(c *cli.Context, name string, dst *string) {
	if c.IsSet(name) {
		*dst = c.String(name)
	}
}
