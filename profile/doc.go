// Package profile provides optional runtime profiling for calcpad.
//
// Profiling is compiled in only with the pprof build tag, which wires
// [github.com/pkg/profile] and registers the [net/http/pprof] handlers.
// Without the tag [Modes] is empty and [Profiler.Start] is a no-op.
//
//	go build -tags pprof -o calcpad .
//	calcpad --pprof-mode cpu --pprof-dir ./profiles eval budget.txt
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// The default output directory is the pprof subdirectory of the user cache
// directory ($XDG_CACHE_HOME/calcpad/pprof on Linux).
package profile
