// Copyright (C) 2024 Alexander Necheff
// This program is licensed under the terms of the LGPLv3.
// See the COPYING and COPYING.LESSER files that came packaged with this source code for the full terms.

// Command pgalloc-demo drives a pgalloc.Allocator from the command line:
// it stands in for the "test driver harness" spec.md treats as an
// external, out-of-core collaborator, demonstrating the allocator rather
// than verifying it (that job belongs to `go test`).
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/necheffa/pgalloc"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	logger := logrus.New()
	entry := logrus.NewEntry(logger)

	a := pgalloc.NewAllocator(nil, pgalloc.WithLogger(entry))

	cmd := &cobra.Command{
		Use:   "pgalloc-demo",
		Short: "drive a pgalloc.Allocator from the command line",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newAllocCmd(a), newViewCmd(a), newVersionCmd())

	return cmd
}

func newAllocCmd(a *pgalloc.Allocator) *cobra.Command {
	var size int
	var count int

	cmd := &cobra.Command{
		Use:   "alloc",
		Short: "allocate and immediately free a batch of same-size blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ptrs := make([]pgalloc.Ptr, 0, count)
			for i := 0; i < count; i++ {
				ptr, err := a.Allocate(size)
				if err != nil {
					return err
				}
				ptrs = append(ptrs, ptr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "allocated %d blocks of %d bytes\n", len(ptrs), size)
			for _, ptr := range ptrs {
				a.Free(ptr)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 64, "bytes per block")
	cmd.Flags().IntVar(&count, "count", 1, "number of blocks to allocate")

	return cmd
}

func newViewCmd(a *pgalloc.Allocator) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "dump the allocator's page state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.View(cmd.OutOrStdout())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the pgalloc version",
		Run: func(cmd *cobra.Command, args []string) {
			logrus.WithField("version", pgalloc.Version).Info(pgalloc.String())
		},
	}
}
