// Package cuedebug backs JSONNET_DEBUG, a comma-separated list of
// name[=bool] debug flags read once at process start, the same
// mechanism cue-lang-cue uses for CUE_DEBUG.
package cuedebug

import (
	"sync"

	"github.com/jsonnet-go/jsonnet/internal/envflag"
)

// Flags holds the set of JSONNET_DEBUG flags. It is initialized by Init.
var Flags Config

// Config holds the set of known JSONNET_DEBUG flags. Field tags set a
// default other than the zero value.
type Config struct {
	// Thunks is accepted in JSONNET_DEBUG; no package reads it, so it
	// has no effect.
	Thunks bool

	// Cycles is accepted in JSONNET_DEBUG; no package reads it, so it
	// has no effect.
	Cycles bool

	// Trampoline makes the CLI's --stats report also print a structured
	// dump of its Stats value to stderr (cmd/jsonnet/cmd/stats.go).
	Trampoline bool

	// ParserTrace is accepted in JSONNET_DEBUG; no package reads it, so
	// it has no effect.
	ParserTrace bool
}

// Init initializes Flags. Note: this isn't named "init" because we don't
// always want it called (e.g. not for a `--help` invocation), and because
// we want the failure mode to be an error, not a panic.
func Init() error {
	return initOnce()
}

var initOnce = sync.OnceValue(func() error {
	return envflag.Init(&Flags, "JSONNET_DEBUG")
})
