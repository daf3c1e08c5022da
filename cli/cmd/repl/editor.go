package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/calcpad/engine"
	"github.com/ardnew/calcpad/log"
)

const defaultEditor = "vi"

// editDocumentCommand implements [tea.ExecCommand] for the edit-evaluate-retry
// loop. It writes the document lines to a temp file, opens the user's editor,
// and evaluates the result. When lines fail the user is offered to re-edit;
// declining keeps the edited lines as they are.
type editDocumentCommand struct {
	eng     *engine.Engine
	lines   []string
	ctxFunc func() context.Context
	edited  []string
	changed bool
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editDocumentCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editDocumentCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editDocumentCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit loop.
func (c *editDocumentCommand) Run() error {
	ctx := c.ctxFunc()

	content := joinLines(c.lines)

	f, err := os.CreateTemp(os.TempDir(), "calcpad-*.txt")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		data, err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath)
		if err != nil {
			return err
		}

		lines := splitLines(string(data))
		res := c.eng.Evaluate(ctx, lines)
		failed := failures(res)

		c.logger.TraceContext(
			ctx,
			"editor evaluate attempt",
			slog.Int("lines", len(lines)),
			slog.Int("failed", len(failed)),
		)

		c.edited, c.changed = lines, string(data) != joinLines(c.lines)

		if len(failed) == 0 {
			return nil
		}

		fmt.Fprintln(c.stderr)

		for _, d := range failed {
			fmt.Fprintf(c.stderr, "line %d: %s\n", d.Line, d.Text)
		}

		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return nil
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return nil
		}

		content = string(data)
	}
}

func failures(res *engine.Result) []engine.Descriptor {
	var failed []engine.Descriptor

	for _, d := range res.Descriptors {
		if d.Err != nil {
			failed = append(failed, d)
		}
	}

	return failed
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	return strings.Join(lines, "\n") + "\n"
}

// splitLines splits text into lines, dropping the empty line after a final
// newline.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// runEditor launches the user's editor on the given file path and returns
// the edited file content.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) ([]byte, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	args := strings.Fields(editor)

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	return os.ReadFile(path)
}
