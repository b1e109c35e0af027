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
	"context"
	"fmt"
	"net/http"
	goruntime "runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/kr/pretty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jsonnet-go/jsonnet/internal/cuedebug"
)

// evalDuration and evalAlloc are the two Prometheus gauges --stats-addr
// exposes; a single jsonnet invocation is a batch job, not a long-lived
// server, so these describe "the last evaluation this process ran"
// rather than a running total.
var (
	evalDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "jsonnet_eval_duration_seconds",
		Help: "Wall-clock time of the most recent evaluation.",
	})
	evalAllocBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "jsonnet_eval_alloc_bytes",
		Help: "Heap bytes allocated during the most recent evaluation.",
	})
)

func init() {
	prometheus.MustRegister(evalDuration, evalAllocBytes)
}

// Stats is the --stats report: timing and memory, plus an invocation ID
// so separate runs are distinguishable in aggregated logs.
type Stats struct {
	Invocation string
	Elapsed    time.Duration
	AllocBytes uint64
}

// startStatsServer serves /metrics on addr until the returned func is
// called. An empty addr is a no-op, so --stats-addr is opt-in per run.
func startStatsServer(addr string) func() {
	if addr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func printStats(cmd *cobra.Command, started time.Time) {
	var ms goruntime.MemStats
	goruntime.ReadMemStats(&ms)

	s := Stats{
		Invocation: uuid.NewString(),
		Elapsed:    time.Since(started),
		AllocBytes: ms.Alloc,
	}
	evalDuration.Set(s.Elapsed.Seconds())
	evalAllocBytes.Set(float64(s.AllocBytes))

	fmt.Fprintf(cmd.ErrOrStderr(), "jsonnet: evaluated in %s, %s allocated (invocation %s)\n",
		s.Elapsed.Round(time.Microsecond), humanize.Bytes(s.AllocBytes), s.Invocation)
	if cuedebug.Flags.Trampoline {
		fmt.Fprintln(cmd.ErrOrStderr(), pretty.Sprint(s))
	}
}
