// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime/debug"
	"slices"
	"strings"
)

// Module is one dependency compiled into the binary.
type Module struct {
	Path    string
	Version string
}

// Modules returns the dependencies recorded in the binary's build info,
// sorted by path. Replaced modules report the replacement's version.
// The result is empty when build info is unavailable.
func Modules() []Module {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return modulesFrom(info)
}

func modulesFrom(info *debug.BuildInfo) []Module {
	modules := make([]Module, 0, len(info.Deps))
	for _, dependency := range info.Deps {
		if dependency.Replace != nil {
			dependency = dependency.Replace
		}
		modules = append(modules, Module{Path: dependency.Path, Version: dependency.Version})
	}
	slices.SortFunc(modules, func(a, b Module) int {
		return strings.Compare(a.Path, b.Path)
	})
	return modules
}
