// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package varfile

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/vardef/lib/vars"
)

// ErrOutOfScope is wrapped by CheckScopes for each int variable whose
// value lies outside its Scope constraint.
var ErrOutOfScope = errors.New("value outside scope")

// CheckScopes reports int variables whose value falls outside their
// scope bounds, joined into one error. Other kinds carry scopes as
// opaque metadata and are not checked. Returns nil when every bound
// holds.
func CheckScopes(collection vars.Collection) error {
	var problems []error
	for _, v := range collection.Vars() {
		definition, ok := v.AsInt()
		if !ok {
			continue
		}
		constraint, constrained := definition.Constraint()
		if !constrained {
			continue
		}
		scope, ok := constraint.Scope()
		if !ok || scope.Contains(definition.Value()) {
			continue
		}
		problems = append(problems, fmt.Errorf("%s: %w: %d not in %d..%d",
			v.Name(), ErrOutOfScope, definition.Value(), scope.Begin, scope.End))
	}
	return errors.Join(problems...)
}
