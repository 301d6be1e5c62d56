// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package varfile

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/vardef/lib/codec"
	"github.com/bureau-foundation/vardef/lib/vars"
)

// ErrLockedOverride is returned by a strict Loader when a layer
// redefines a variable an earlier layer locked.
var ErrLockedOverride = errors.New("locked variable redefined")

// Loader reads collection files and merges them in order. Each layer
// overrides the names it shares with the layers before it.
type Loader struct {
	logger *slog.Logger

	// Format forces the document format of every layer. Zero means
	// detect from each path's extension.
	Format codec.Format

	// Strict rejects layers that redefine a locked variable. When
	// false such overrides are applied and logged as warnings.
	Strict bool
}

// NewLoader returns a Loader that logs to logger, or to slog.Default
// when logger is nil.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads every path and merges the layers left to right. Loading
// stops at the first unreadable or invalid file.
func (l *Loader) Load(paths ...string) (vars.Collection, error) {
	var merged vars.Collection
	for _, path := range paths {
		layer, err := ReadFile[vars.Collection](path, l.Format)
		if err != nil {
			return vars.Collection{}, fmt.Errorf("loading layer: %w", err)
		}
		l.logger.Debug("loaded variable layer",
			"path", path,
			"vars", layer.Len(),
		)
		merged, err = l.Overlay(merged, layer, path)
		if err != nil {
			return vars.Collection{}, err
		}
	}
	return merged, nil
}

// Overlay merges layer onto base, logging every name layer overrides.
// source names the layer in log lines and errors.
func (l *Loader) Overlay(base, layer vars.Collection, source string) (vars.Collection, error) {
	for _, v := range layer.Vars() {
		previous, exists := base.Lookup(v.Name())
		if !exists {
			continue
		}
		constraint, constrained := previous.Constraint()
		if constrained && constraint.IsLocked() {
			if l.Strict {
				return vars.Collection{}, fmt.Errorf("%s: %w: %s", source, ErrLockedOverride, v.Name())
			}
			l.logger.Warn("locked variable overridden",
				"name", v.Name(),
				"source", source,
				"previous", previous.String(),
				"value", v.String(),
			)
			continue
		}
		l.logger.Info("variable overridden",
			"name", v.Name(),
			"source", source,
			"previous", previous.String(),
			"value", v.String(),
		)
	}
	return base.Merge(layer), nil
}
