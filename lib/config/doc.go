// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the vardef
// CLI.
//
// Configuration is loaded from a single file specified by either the
// VARDEF_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search.
//
// A config names the variable layers to merge, inline variables merged
// after them, and output settings. Environment-specific sections
// (development, staging, production) extend the base values when
// [Config].Environment matches. Production defaults to strict loading,
// which refuses to override locked variables.
//
// ${HOME}, ${VARDEF_ROOT} and ${VAR:-default} patterns are expanded in
// the root and layer paths after loading. No other environment
// variables override config values.
package config
