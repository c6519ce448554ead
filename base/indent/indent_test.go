// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package indent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, "\t\t", String(Tab, 2, 4))
	assert.Equal(t, "      ", String(Space, 3, 2))
	assert.Equal(t, "", Spaces(-1, 2))
	assert.Equal(t, "", Tabs(0))
}
