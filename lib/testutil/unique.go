// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueName returns "prefix_N" where N increases with every call, so
// variables built in loops or parallel subtests never share a name.
//
//	name := testutil.UniqueName("port") // "port_1", "port_2", ...
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, uniqueCounter.Add(1))
}
