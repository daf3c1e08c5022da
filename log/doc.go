// Package log is the leveled structured logger used throughout calcpad.
//
// A [Logger] wraps [log/slog] with a trace level below debug, functional
// [Option] configuration, and a terminal handler that colors records with
// lipgloss:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339"),
//		log.WithCaller(true))
//	logger.Info("evaluate", slog.Int("lines", 12))
//
// The zero [Logger] discards everything. Components accept one through a
// WithLogger option and log unconditionally.
//
// The package-level functions ([Info], [DebugContext], …) write to a
// shared default logger that [Config] reconfigures.
package log
