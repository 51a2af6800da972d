// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		info, ok := debug.ReadBuildInfo()
		if !ok {
			fmt.Fprintln(w, "fillargs (unknown version)")
			return nil
		}
		fmt.Fprintf(w, "%s %s\n", info.Path, info.Main.Version)
		fmt.Fprintf(w, "    built with %s\n", info.GoVersion)
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision", "vcs.time", "vcs.modified":
				fmt.Fprintf(w, "    %s=%s\n", s.Key, s.Value)
			}
		}
		return nil
	},
}
