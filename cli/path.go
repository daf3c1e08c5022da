package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/calcpad/pkg"
)

// configFile is the base name of the configuration file.
const configFile = "config.yaml"

// docsDir names the directory under the configuration directory that is
// always searched for documents.
const docsDir = "docs"

var defaultDirMode os.FileMode = 0o700

// configPath joins elem to the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}

// searchPath returns the directories searched for documents named on the
// command line: the working directory, then the entries of env (a
// PATH-like list), then the docs directory. Missing directories are
// dropped.
func searchPath(env string) []string {
	sep := string(os.PathListSeparator)

	subject := strings.Join([]string{env, configPath(docsDir)}, sep)

	list := mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(sep),
		mung.WithPrefixItems("."),
		mung.WithFilter(isDir),
	).String()

	return filepath.SplitList(list)
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
