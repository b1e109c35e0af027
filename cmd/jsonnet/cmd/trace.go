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
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"

	"github.com/jsonnet-go/jsonnet"
)

// traceSink builds the std.trace destination for --trace: a logr.Logger
// backed by funcr (go-logr's formatting-only LogSink, no external log
// backend required) writing one line per call to the command's stderr.
// Returns nil when disabled, leaving std.trace a no-op.
func traceSink(cmd *cobra.Command, enabled bool) jsonnet.TraceSink {
	if !enabled {
		return nil
	}
	log := funcr.New(func(prefix, args string) {
		if prefix != "" {
			cmd.PrintErrln(prefix + ": " + args)
			return
		}
		cmd.PrintErrln(args)
	}, funcr.Options{})
	return func(line string) {
		log.Info(line)
	}
}
