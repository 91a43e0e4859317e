// Copyright (C) 2024 Alexander Necheff
// This program is licensed under the terms of the LGPLv3.
// See the COPYING and COPYING.LESSER files that came packaged with this source code for the full terms.

package pgalloc

import "fmt"

// Version is the build-time version string. It is left at "dev" unless
// set by the linker, e.g.:
//
//	go build -ldflags "-X github.com/necheffa/pgalloc.Version=v1.0.0"
var Version = "dev"

// String returns a human-readable rendering of Version.
func String() string {
	return fmt.Sprintf("pgalloc %s", Version)
}
