// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"log/slog"

	"github.com/bureau-foundation/vardef/lib/config"
	"github.com/bureau-foundation/vardef/lib/varfile"
	"github.com/bureau-foundation/vardef/lib/vars"
)

// layerParams control how collection files are merged.
type layerParams struct {
	Strict bool `flag:"strict" desc:"fail when a layer redefines a locked variable (default: config strict)"`
}

// loader builds a Loader honoring --from and --strict. The config's
// strict setting also applies.
func (p *layerParams) loader(input *inputParams, cfg *config.Config, logger *slog.Logger) (*varfile.Loader, error) {
	format, err := input.forced()
	if err != nil {
		return nil, err
	}
	loader := varfile.NewLoader(logger)
	loader.Format = format
	loader.Strict = p.Strict || cfg.Strict
	return loader, nil
}

// mergeLayers merges the named files, or when none are named, the
// config's layers followed by its inline variables.
func mergeLayers(loader *varfile.Loader, cfg *config.Config, paths []string) (vars.Collection, error) {
	if len(paths) > 0 {
		merged, err := loader.Load(paths...)
		return merged, categorize(err)
	}
	merged, err := loader.Load(cfg.Layers...)
	if err != nil {
		return vars.Collection{}, categorize(err)
	}
	merged, err = loader.Overlay(merged, cfg.InlineVariables(), "config")
	return merged, categorize(err)
}
