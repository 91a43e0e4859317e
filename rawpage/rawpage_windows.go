// Copyright (C) 2024 Alexander Necheff
// This program is licensed under the terms of the LGPLv3.
// See the COPYING and COPYING.LESSER files that came packaged with this source code for the full terms.

//go:build windows

package rawpage

func defaultSource() Source {
	return NewHeapSource()
}
