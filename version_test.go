// Copyright (C) 2024 Alexander Necheff
// This program is licensed under the terms of the LGPLv3.
// See the COPYING and COPYING.LESSER files that came packaged with this source code for the full terms.

package pgalloc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionStringIncludesVersion(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v9.9.9"
	require.True(t, strings.Contains(String(), "v9.9.9"))
}
