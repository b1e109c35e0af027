// Copyright 2026 The Jsonnet-Go Authors
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

// Package cmd implements the jsonnet command's cobra command tree: the
// root command itself evaluates (`jsonnet file.jsonnet`), and `version`
// is its only subcommand.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jsonnet-go/jsonnet/internal/cuedebug"
)

// color reports whether diagnostic output should be ANSI-colored: stderr
// is a terminal and the caller hasn't set NO_COLOR (https://no-color.org).
func color() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// New builds the root command.
func New() *cobra.Command {
	var opts evalOptions

	root := &cobra.Command{
		Use:           "jsonnet [flags] <file>",
		Short:         "Evaluate a Jsonnet file or snippet",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cuedebug.Init(); err != nil {
				return err
			}
			return bindConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args, &opts)
		},
	}
	// Flag names use '-'. The normalizer also accepts '_' in their place,
	// so --ext_str names the same flag as --ext-str.
	root.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	registerEvalFlags(root, &opts)
	root.PersistentFlags().String("config", "", "config file with default flag values (yaml, json, or toml)")

	root.AddCommand(newVersionCmd())
	return root
}

// bindConfig loads --config (if set) into viper and copies any values it
// doesn't find already set on the command line onto the flag set, so a
// config file supplies defaults a flag can still override.
func bindConfig(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil || path == "" {
		return nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	var rerr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if rerr != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := f.Value.Set(v.GetString(f.Name)); err != nil {
			rerr = fmt.Errorf("config key %q: %w", f.Name, err)
		}
	})
	return rerr
}

// Main runs the command tree against os.Args[1:] and returns a process
// exit code, factored out of main.go so testscript-driven integration
// tests can exercise the real CLI in-process (testscript.RunMain).
func Main() int {
	if err := New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the jsonnet version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version())
			return nil
		},
	}
}
