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

package config

// This file hosts non-user-configurable parameters --- these are for development and testing purposes only.

// NullmarkNoInferString is the string that may be inserted into the docstring for a package to
// prevent nullmark from inferring annotations for that package - this is useful for unit tests.
const NullmarkNoInferString = "<nullmark no inference>"

// NullmarkPkgPathPrefix is the module path prefix for nullmark itself; packages under this prefix
// are never analyzed.
const NullmarkPkgPathPrefix = "github.com/nullmark/nullmark"

// AnnotationKeyword is the directive name recognized in annotation comments, as in
// `//nullability(nullable)`.
const AnnotationKeyword = "nullability"
