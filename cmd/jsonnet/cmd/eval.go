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

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsonnet-go/jsonnet"
	"github.com/jsonnet-go/jsonnet/syntax/errors"
)

// evalOptions holds the parsed --ext-*/--tla-*/--jpath/... flags shared
// by the root command's default action.
type evalOptions struct {
	extStr  *varFlags
	extCode *varFlags
	tlaStr  *varFlags
	tlaCode *varFlags

	jpath    []string
	maxStack int

	multiDir   string
	yamlStream bool
	plainStr   bool
	output     string

	exec      string
	stats     bool
	statsAddr string
	trace     bool
}

func registerEvalFlags(cmd *cobra.Command, o *evalOptions) {
	o.extStr = newVarFlags(false)
	o.extCode = newVarFlags(true)
	o.tlaStr = newVarFlags(false)
	o.tlaCode = newVarFlags(true)

	f := cmd.Flags()
	f.Var(o.extStr, "ext-str", "set an external variable from a literal string NAME=VALUE (repeatable)")
	f.Var(o.extCode, "ext-code", "set an external variable from Jsonnet source NAME=CODE (repeatable)")
	f.Var(o.tlaStr, "tla-str", "set a top-level argument from a literal string NAME=VALUE (repeatable)")
	f.Var(o.tlaCode, "tla-code", "set a top-level argument from Jsonnet source NAME=CODE (repeatable)")
	f.StringSliceVarP(&o.jpath, "jpath", "J", nil, "directory to search for imports (repeatable)")
	f.IntVar(&o.maxStack, "max-stack", 0, "maximum evaluation recursion depth (0: use the default)")
	f.StringVar(&o.multiDir, "multi", "", "write one file per top-level object field into DIR")
	f.BoolVar(&o.yamlStream, "yaml-stream", false, "manifest a top-level array as a YAML stream")
	f.BoolVarP(&o.plainStr, "string", "S", false, "manifest a top-level string without JSON quoting")
	f.StringVarP(&o.output, "output-file", "o", "", "write output to FILE instead of stdout")
	f.StringVarP(&o.exec, "exec", "e", "", "evaluate SOURCE directly instead of reading a file")
	f.BoolVar(&o.stats, "stats", false, "print evaluation statistics to stderr")
	f.StringVar(&o.statsAddr, "stats-addr", "", "serve Prometheus metrics on ADDR until the evaluation completes")
	f.BoolVar(&o.trace, "trace", false, "print std.trace output to stderr")
}

func runEval(cmd *cobra.Command, args []string, o *evalOptions) error {
	if o.exec == "" && len(args) == 0 {
		return fmt.Errorf("expected a file argument or --exec SOURCE")
	}

	stopStats := startStatsServer(o.statsAddr)
	defer stopStats()

	started := time.Now()

	evalr, err := jsonnet.NewEvaluator(jsonnet.Config{
		MaxStack: o.maxStack,
		ExtVars:  merge(map[string]jsonnet.Var{}, o.extStr, o.extCode),
		TLAVars:  merge(map[string]jsonnet.Var{}, o.tlaStr, o.tlaCode),
		Jpath:    o.jpath,
		Trace:    traceSink(cmd, o.trace),
	})
	if err != nil {
		return reportErr(err)
	}

	evaluated, err := evaluate(evalr, o, args)
	if err != nil {
		return reportErr(err)
	}

	var out string

	switch {
	case o.multiDir != "":
		files, err := jsonnet.EvaluateMulti(evaluated, manifestFormat(o))
		if err != nil {
			return reportErr(err)
		}
		if err := writeMulti(o.multiDir, files); err != nil {
			return err
		}
	case o.yamlStream:
		docs, err := jsonnet.EvaluateStream(evaluated, jsonnet.YAMLDocument)
		if err != nil {
			return reportErr(err)
		}
		out = joinYAMLStream(docs)
		if err := writeOutput(cmd, o.output, out); err != nil {
			return err
		}
	default:
		out, err = jsonnet.Manifest(evaluated, manifestFormat(o))
		if err != nil {
			return reportErr(err)
		}
		if err := writeOutput(cmd, o.output, out+"\n"); err != nil {
			return err
		}
	}

	if o.stats {
		printStats(cmd, started)
	}
	return nil
}

func manifestFormat(o *evalOptions) jsonnet.Format {
	if o.plainStr {
		return jsonnet.PlainString
	}
	return jsonnet.JSON
}

func evaluate(evalr *jsonnet.Evaluator, o *evalOptions, args []string) (jsonnet.Value, error) {
	if o.exec != "" {
		return evalr.EvaluateSnippet("<exec>", o.exec)
	}
	return evalr.EvaluateFile(args[0])
}

func writeMulti(dir string, files map[string]string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(files[name]+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

func joinYAMLStream(docs []string) string {
	out := ""
	for _, d := range docs {
		out += "---\n" + d + "\n"
	}
	return out
}

func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// reportErr renders a syntax/errors.Error with its full frame stack,
// colorized when stderr is a terminal.
func reportErr(err error) error {
	ee, ok := err.(errors.Error)
	if !ok {
		return err
	}
	msg := ee.Error()
	if color() {
		return fmt.Errorf("\x1b[31m%s\x1b[0m", msg)
	}
	return fmt.Errorf("%s", msg)
}
