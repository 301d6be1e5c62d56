// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/bureau-foundation/vardef/cmd/vardef/cli"
	"github.com/bureau-foundation/vardef/lib/config"
	"github.com/bureau-foundation/vardef/lib/varfile"
	"github.com/bureau-foundation/vardef/lib/vars"
)

// streams are the standard streams a command reads and writes. level
// is the logger's level, raised to debug by --verbose; it may be nil.
type streams struct {
	in    io.Reader
	out   io.Writer
	err   io.Writer
	level *slog.LevelVar
}

// commonParams are the flags every command that reads variables
// accepts.
type commonParams struct {
	Config  string `flag:"config" desc:"path to vardef.yaml (default: $VARDEF_CONFIG, else built-in defaults)"`
	Verbose bool   `flag:"verbose,v" desc:"log at debug level"`
}

// setup applies --verbose and loads the configuration.
func (p *commonParams) setup(s *streams) (*config.Config, error) {
	if p.Verbose && s.level != nil {
		s.level.Set(slog.LevelDebug)
	}

	var cfg *config.Config
	var err error
	switch {
	case p.Config != "":
		cfg, err = config.LoadFile(p.Config)
	case os.Getenv("VARDEF_CONFIG") != "":
		cfg, err = config.Load()
	default:
		return config.Default(), nil
	}
	if err != nil {
		return nil, categorize(fmt.Errorf("loading config: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid config:\n%v", err)
	}
	return cfg, nil
}

// categorize assigns a tool error category from the error chain:
// missing files are not-found, malformed documents and refused merges
// are validation failures, and everything else is internal.
func categorize(err error) error {
	if err == nil {
		return nil
	}
	return cli.Categorize(err, isNotFound, isValidation)
}

func isNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func isValidation(err error) bool {
	var parseErr *vars.ParseError
	return errors.As(err, &parseErr) ||
		errors.Is(err, varfile.ErrLockedOverride) ||
		errors.Is(err, varfile.ErrOutOfScope)
}
