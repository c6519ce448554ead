// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testdata has types used in the types tests.
package testdata

// Entity is a type named the same as a type in the types tests.
type Entity struct {
	Name string
}
