package cmd

import (
	"context"
	"os"

	"github.com/ardnew/calcpad/cli/cmd/repl"
	"github.com/ardnew/calcpad/log"
)

// Repl edits a document interactively, printing the result of each line as
// it is entered.
type Repl struct {
	Files []string `arg:"" help:"Documents to start from, '-' for standard input." optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer func(err *error) { cancel(*err) }(&err)

	var lines []string

	if len(r.Files) > 0 {
		if lines, err = readDocument(ctx, r.Files, os.Stdin); err != nil {
			return err
		}
	}

	eng, err := newEngine(ctx)
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, eng, lines, cacheDir, log.Default())
}
