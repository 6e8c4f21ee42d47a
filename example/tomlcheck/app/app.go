// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package app implements tomlcheck, a small CLI for inspecting TOML files.
package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/z5labs/pathflag"
	"github.com/z5labs/pathflag/toml"

	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// Settings configure tomlcheck itself. They are read from the file
// given by the --config flag.
type Settings struct {
	LogLevel    zapcore.Level `toml:"log_level"`
	Concurrency int           `toml:"concurrency"`
}

// Validate implements the toml.Validator interface.
func (s Settings) Validate() error {
	if s.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative: %d", s.Concurrency)
	}
	return nil
}

func (s Settings) concurrency() int {
	if s.Concurrency == 0 {
		return defaultConcurrency
	}
	return s.Concurrency
}

// Option configures the tomlcheck command.
type Option func(*options)

type options struct {
	fs     afero.Fs
	out    io.Writer
	logger *zap.Logger
}

// FS sets the filesystem all paths are resolved against.
func FS(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// Output sets where results are written.
func Output(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// Logger overrides the logger which would otherwise be built from Settings.
func Logger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewCommand returns the root tomlcheck command.
func NewCommand(opts ...Option) *cobra.Command {
	o := &options{
		fs: afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(o)
	}

	settings := pathflag.New(
		toml.NewDecoder[Settings](toml.DisallowUnknownFields()),
		pathflag.FS(o.fs),
	)

	cmd := &cobra.Command{
		Use:           "tomlcheck",
		Short:         "Inspect and validate TOML files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if o.out == nil {
				o.out = cmd.OutOrStdout()
			}
			if o.logger != nil {
				return nil
			}

			cfg := zap.NewProductionConfig()
			cfg.Level = zap.NewAtomicLevelAt(toml.Data(settings).LogLevel)
			logger, err := cfg.Build()
			if err != nil {
				return err
			}
			o.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			// Sync fails for stderr on some terminals.
			_ = o.logger.Sync()
		},
	}
	cmd.PersistentFlags().Var(settings, "config", "path to a TOML file configuring tomlcheck")

	cmd.AddCommand(
		validateCommand(o, settings),
		getCommand(o),
	)
	return cmd
}

// InvalidFilesError is returned by validate when at least one file could not be decoded.
type InvalidFilesError struct {
	Paths []string
}

// Error implements the error interface.
func (e InvalidFilesError) Error() string {
	return fmt.Sprintf("%d invalid toml file(s): %s", len(e.Paths), strings.Join(e.Paths, ", "))
}

func validateCommand(o *options, settings *pathflag.PathTo[toml.Of[Settings]]) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check that every given file is a valid TOML document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]error, len(args))

			var g errgroup.Group
			g.SetLimit(toml.Data(settings).concurrency())
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					_, err := pathflag.Read(path, toml.NewDecoder[any](), pathflag.FS(o.fs))
					results[i] = err
					return nil
				})
			}
			g.Wait()

			var invalid []string
			for i, path := range args {
				err := results[i]
				if err == nil {
					o.logger.Debug("valid toml file", zap.String("path", path))
					fmt.Fprintf(o.out, "ok  %s\n", path)
					continue
				}

				o.logger.Warn("invalid toml file", zap.String("path", path), zap.Error(err))
				fmt.Fprintf(o.out, "err %s: %s\n", path, unwrapPathError(err))
				invalid = append(invalid, path)
			}
			if len(invalid) > 0 {
				return InvalidFilesError{Paths: invalid}
			}
			return nil
		},
	}
}

func unwrapPathError(err error) error {
	var perr *pathflag.PathError
	if errors.As(err, &perr) {
		return perr.Cause
	}
	return err
}

// KeyNotFoundError is returned by get when the requested key is not present.
type KeyNotFoundError struct {
	Key string
}

// Error implements the error interface.
func (e KeyNotFoundError) Error() string {
	return fmt.Sprintf("key not found: %s", e.Key)
}

func getCommand(o *options) *cobra.Command {
	doc := toml.Path[map[string]any](pathflag.FS(o.fs))

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value found at a dotted key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			v, err := lookup(toml.IntoData(doc), key)
			if err != nil {
				return err
			}

			o.logger.Debug("found key", zap.String("path", doc.Path()), zap.String("key", key))
			return printValue(o.out, v)
		},
	}
	cmd.Flags().Var(doc, "file", "path to the TOML document to read from")
	cmd.MarkFlagRequired("file")
	return cmd
}

func lookup(m map[string]any, key string) (any, error) {
	var cur any = m
	for _, part := range strings.Split(key, ".") {
		table, ok := cur.(map[string]any)
		if !ok {
			return nil, KeyNotFoundError{Key: key}
		}
		cur, ok = table[part]
		if !ok {
			return nil, KeyNotFoundError{Key: key}
		}
	}
	return cur, nil
}

func printValue(w io.Writer, v any) error {
	table, ok := v.(map[string]any)
	if !ok {
		_, err := fmt.Fprintln(w, v)
		return err
	}

	b, err := gotoml.Marshal(table)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
