// Copyright 2023 NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/nlpodyssey/wordtok"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel)

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "wordtok",
		Usage: "Fit a word tokenizer on the text column of a train/test CSV dataset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set log level (trace, debug, info, warn, error, fatal, panic)",
				Value:   "info",
				EnvVars: []string{"WORDTOK_LOGLEVEL"},
			},
			&cli.BoolFlag{
				Name:  "json-log",
				Usage: "log messages in JSON format (default when stderr is not a terminal)",
				Value: !isatty.IsTerminal(os.Stderr.Fd()),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "the path to the YAML configuration file",
				EnvVars: []string{"WORDTOK_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "train",
				Usage:   "path or URL of the training CSV file",
				EnvVars: []string{"WORDTOK_TRAIN"},
			},
			&cli.StringFlag{
				Name:    "test",
				Usage:   "path or URL of the test CSV file",
				EnvVars: []string{"WORDTOK_TEST"},
			},
			&cli.StringFlag{
				Name:  "column",
				Usage: "name of the column holding the texts",
			},
			&cli.StringFlag{
				Name:  "delimiter",
				Usage: "CSV field delimiter",
			},
			&cli.StringFlag{
				Name:  "strategy",
				Usage: "fitting strategy (incremental, batch)",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "matrix mode used to encode documents while fitting (binary, count, freq, tfidf)",
			},
			&cli.IntFlag{
				Name:  "num-words",
				Usage: "maximum number of words to keep, based on word frequency (0 means no limit)",
			},
			&cli.StringFlag{
				Name:  "oov-token",
				Usage: "token used to replace out-of-vocabulary words",
			},
			&cli.StringFlag{
				Name:    "cache-dir",
				Usage:   "directory where remote CSV files are downloaded",
				EnvVars: []string{"WORDTOK_CACHE_DIR"},
			},
			&cli.StringFlag{
				Name:    "access-token",
				Usage:   "bearer token used to download remote CSV files",
				EnvVars: []string{"WORDTOK_ACCESS_TOKEN"},
			},
			&cli.BoolFlag{
				Name:    "refresh",
				Usage:   "download remote CSV files again even if they are cached",
				EnvVars: []string{"WORDTOK_REFRESH"},
			},
		},
		Before: func(c *cli.Context) error {
			return setupLogger(c.Bool("json-log"), c.String("log-level"))
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Load the dataset and fit the tokenizer",
				Action: func(c *cli.Context) error {
					ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
					defer stop()

					cfg, err := configFromContext(c)
					if err != nil {
						return err
					}
					if _, err = wordtok.Run(ctx, cfg); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, "finished")
					return nil
				},
			},
			{
				Name:  "inspect",
				Usage: "Fit the tokenizer and print the learned vocabulary",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top",
						Usage: "number of vocabulary entries to print",
						Value: 20,
					},
				},
				Action: func(c *cli.Context) error {
					ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
					defer stop()

					cfg, err := configFromContext(c)
					if err != nil {
						return err
					}
					res, err := wordtok.Run(ctx, cfg)
					if err != nil {
						return err
					}
					printVocabulary(c.App.Writer, res.Tokenizer, c.Int("top"))
					return nil
				},
			},
			{
				Name:  "sequence",
				Usage: "Print the word sequence of each line read from standard input",
				Action: func(c *cli.Context) error {
					cfg, err := baseConfig(c)
					if err != nil {
						return err
					}
					return writeSequences(os.Stdin, c.App.Writer, cfg.Tokenizer)
				},
			},
		},
	}
}

func setupLogger(jsonLog bool, logLevel string) error {
	if !jsonLog {
		log.Logger = log.Logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = log.Logger.Output(os.Stderr)
	}

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	log.Logger = log.Logger.Level(level)
	return nil
}
