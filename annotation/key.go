//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package annotation

import (
	"go/token"
	"go/types"
)

// A Key identifies one annotatable declaration across package boundaries. Keys form the map keys
// of all fact-communicated data, so the encoding must be injective and deterministic: facts
// learned about different declarations must never overwrite each other, and the same declaration
// must always encode to the same key regardless of which package observes it. Injectivity is
// guaranteed through the combination of Pos - an offset within the analyzed file set - and
// PkgPath. The contents are kept minimal since keys are gob-encoded into facts very frequently.
type Key struct {
	// StringRepr is a human-readable representation of the declaration (the full name for
	// functions and methods, package-qualified name otherwise).
	StringRepr string
	// Pos is the declaring identifier's position.
	Pos token.Pos
	// PkgPath is the path of the package the declaration belongs to.
	PkgPath string
	// Exported indicates whether the declaration is exported, which governs whether facts about
	// it are worth passing downstream.
	Exported bool
}

// NewKey encodes a declaration's object as a Key.
func NewKey(obj types.Object) Key {
	pkgPath := ""
	if pkg := obj.Pkg(); pkg != nil {
		pkgPath = pkg.Path()
	}
	repr := obj.Name()
	if fn, ok := obj.(*types.Func); ok {
		repr = fn.FullName()
	} else if pkgPath != "" {
		repr = pkgPath + "." + repr
	}
	return Key{
		StringRepr: repr,
		Pos:        obj.Pos(),
		PkgPath:    pkgPath,
		Exported:   obj.Exported(),
	}
}

func (k Key) String() string {
	return k.StringRepr
}
