package cmd

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/klauspost/readahead"

	"github.com/ardnew/calcpad/engine"
	"github.com/ardnew/calcpad/log"
)

type (
	kongContextKey struct{}
	configKey      struct{}
	searchPathKey  struct{}
)

// WithContext returns ctx carrying the parsed kong context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, kongContextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(kongContextKey{}).(*kong.Context)

	return ktx
}

// WithConfig returns ctx carrying the engine configuration used by every
// command.
func WithConfig(ctx context.Context, cfg engine.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) engine.Config {
	if cfg, ok := ctx.Value(configKey{}).(engine.Config); ok {
		return cfg
	}

	return engine.Defaults()
}

// WithSearchPath returns ctx carrying the directories searched for
// documents named by relative path.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, dirs)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

// newEngine builds an engine from the configuration in ctx, logging to the
// default logger.
func newEngine(ctx context.Context) (*engine.Engine, error) {
	eng, err := engine.New(configFrom(ctx), engine.WithLogger(log.Default()))
	if err != nil {
		return nil, ErrEngine.Wrap(err)
	}

	return eng, nil
}

// stdout returns the writer kong was configured with, or os.Stdout.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stdinSource names standard input among the sources.
const stdinSource = "-"

// fileKey identifies a file by device and inode, so one document reached
// through different paths or links is read once.
type fileKey struct {
	dev uint64
	ino uint64
}

func makeFileKey(info os.FileInfo) (fileKey, bool) {
	if info == nil {
		return fileKey{}, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// locate resolves name against dirs. Absolute paths, and relative paths
// that exist from the working directory, are returned unchanged.
func locate(name string, dirs []string) (string, bool) {
	if _, err := os.Stat(name); err == nil || filepath.IsAbs(name) {
		return name, err == nil
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}

	return name, false
}

// readDocument returns the lines of the documents named by sources, read
// in order and concatenated. Duplicate files are read once, and standard
// input, named by "-" or by path, is read last. No sources means standard
// input.
func readDocument(ctx context.Context, sources []string, stdin io.Reader) ([]string, error) {
	if len(sources) == 0 {
		sources = []string{stdinSource}
	}

	var (
		files    []string
		hasStdin bool
	)

	seen := make(map[fileKey]struct{})

	var stdinKey fileKey
	if f, ok := stdin.(*os.File); ok {
		info, _ := f.Stat()
		stdinKey, _ = makeFileKey(info)
	}

	for _, src := range sources {
		if src == stdinSource {
			hasStdin = true

			continue
		}

		path, ok := locate(src, searchPathFrom(ctx))
		if !ok {
			return nil, ErrSourceNotFound.With(slog.String("file", src))
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, ErrReadSource.With(slog.String("file", path)).Wrap(err)
		}

		if key, ok := makeFileKey(info); ok {
			if key == stdinKey && stdinKey != (fileKey{}) {
				hasStdin = true

				continue
			}

			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}
		}

		files = append(files, path)
	}

	var lines []string

	for _, path := range files {
		more, err := readFile(path)
		if err != nil {
			return nil, err
		}

		lines = append(lines, more...)
	}

	if hasStdin {
		more, err := readLines(stdin)
		if err != nil {
			return nil, ErrReadSource.With(slog.String("file", stdinSource)).Wrap(err)
		}

		lines = append(lines, more...)
	}

	log.DebugContext(ctx, "document read",
		slog.Int("files", len(files)),
		slog.Bool("stdin", hasStdin),
		slog.Int("lines", len(lines)),
	)

	return lines, nil
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadSource.With(slog.String("file", path)).Wrap(err)
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return nil, ErrReadSource.With(slog.String("file", path)).Wrap(err)
	}

	return lines, nil
}

// maxLineSize bounds the length of one document line.
const maxLineSize = 1 << 20

// readLines splits r into lines, reading ahead asynchronously.
func readLines(r io.Reader) ([]string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	var lines []string

	sc := bufio.NewScanner(ra)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}

	return lines, sc.Err()
}
