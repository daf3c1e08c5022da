package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	key, str, num, bool, dur, time, source, msg lipgloss.Style
	level                                       map[slog.Level]lipgloss.Style
}

func newPalette(r *lipgloss.Renderer) palette {
	color := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return palette{
		key:    color("8"),
		str:    color("6"),
		num:    color("3"),
		bool:   color("5"),
		dur:    color("5"),
		time:   color("8"),
		source: color("4").Faint(true),
		msg:    r.NewStyle().Bold(true),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): color("8"),
			slog.LevelDebug:        color("4"),
			slog.LevelInfo:         color("2"),
			slog.LevelWarn:         color("3"),
			slog.LevelError:        color("1").Bold(true),
		},
	}
}

// levelStyle returns the style of the nearest named level at or below l.
func (p palette) levelStyle(l slog.Level) lipgloss.Style {
	best, found := slog.Level(LevelTrace), false

	for k := range p.level {
		if k <= l && (!found || k > best) {
			best, found = k, true
		}
	}

	return p.level[best]
}

// prettyHandler renders records in color for a terminal, either as
// key=value text or as a single-line JSON object. Colors are dropped when
// the output is not a terminal.
type prettyHandler struct {
	opts    slog.HandlerOptions
	format  Format
	mu      *sync.Mutex
	w       io.Writer
	palette palette
	prefix  string   // rendered attributes from WithAttrs
	groups  []string // open groups from WithGroup
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, format Format) *prettyHandler {
	return &prettyHandler{
		opts:    *opts,
		format:  format,
		mu:      &sync.Mutex{},
		w:       w,
		palette: newPalette(lipgloss.NewRenderer(w)),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var fields []string

	if a := h.replace(nil, slog.Time(slog.TimeKey, r.Time)); !r.Time.IsZero() && a.Key != "" {
		fields = append(fields, h.field(a, h.palette.time))
	}

	if a := h.replace(nil, slog.Any(slog.LevelKey, r.Level)); a.Key != "" {
		fields = append(fields, h.field(a, h.palette.levelStyle(r.Level)))
	}

	if h.opts.AddSource && r.PC != 0 {
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		src := slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", shortFile(f.File), f.Line))
		fields = append(fields, h.field(src, h.palette.source))
	}

	fields = append(fields, h.field(slog.String(slog.MessageKey, r.Message), h.palette.msg))

	if h.prefix != "" {
		fields = append(fields, h.prefix)
	}

	r.Attrs(func(a slog.Attr) bool {
		if s := h.attr(h.groups, a); s != "" {
			fields = append(fields, s)
		}

		return true
	})

	var buf bytes.Buffer

	if h.format == FormatJSON {
		buf.WriteString("{" + strings.Join(fields, ",") + "}\n")
	} else {
		buf.WriteString(strings.Join(fields, " ") + "\n")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	parts := []string{}

	if c.prefix != "" {
		parts = append(parts, c.prefix)
	}

	for _, a := range attrs {
		if s := c.attr(c.groups, a); s != "" {
			parts = append(parts, s)
		}
	}

	sep := " "
	if c.format == FormatJSON {
		sep = ","
	}

	c.prefix = strings.Join(parts, sep)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(append([]string{}, h.groups...), name)

	return &c
}

func (h *prettyHandler) replace(groups []string, a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(groups, a)
}

// attr renders a, flattening groups into dotted keys.
func (h *prettyHandler) attr(groups []string, a slog.Attr) string {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() != slog.KindGroup {
		a = h.replace(groups, a)
	}

	if a.Equal(slog.Attr{}) {
		return ""
	}

	if a.Value.Kind() == slog.KindGroup {
		sub := groups
		if a.Key != "" {
			sub = append(append([]string{}, groups...), a.Key)
		}

		var parts []string

		for _, ga := range a.Value.Group() {
			if s := h.attr(sub, ga); s != "" {
				parts = append(parts, s)
			}
		}

		sep := " "
		if h.format == FormatJSON {
			sep = ","
		}

		return strings.Join(parts, sep)
	}

	key := strings.Join(append(append([]string{}, groups...), a.Key), ".")

	return h.field(slog.Attr{Key: key, Value: a.Value}, h.valueStyle(a.Value))
}

func (h *prettyHandler) valueStyle(v slog.Value) lipgloss.Style {
	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.palette.num
	case slog.KindBool:
		return h.palette.bool
	case slog.KindDuration:
		return h.palette.dur
	case slog.KindTime:
		return h.palette.time
	default:
		return h.palette.str
	}
}

func (h *prettyHandler) field(a slog.Attr, style lipgloss.Style) string {
	if h.format == FormatJSON {
		return h.palette.key.Render(strconv.Quote(a.Key)) + ":" + style.Render(jsonValue(a.Value))
	}

	switch a.Key {
	case slog.TimeKey, slog.LevelKey, slog.MessageKey, slog.SourceKey:
		return style.Render(a.Value.String())
	}

	return h.palette.key.Render(a.Key+"=") + style.Render(textValue(a.Value))
}

func textValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			return strconv.Quote(s)
		}

		return s
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	default:
		return v.String()
	}
}

func jsonValue(v slog.Value) string {
	var x any

	switch v.Kind() {
	case slog.KindString:
		x = v.String()
	case slog.KindInt64:
		x = v.Int64()
	case slog.KindUint64:
		x = v.Uint64()
	case slog.KindFloat64:
		x = v.Float64()
	case slog.KindBool:
		x = v.Bool()
	case slog.KindDuration:
		x = v.Duration().String()
	case slog.KindTime:
		x = v.Time().Format(time.RFC3339Nano)
	default:
		if err, ok := v.Any().(error); ok {
			x = err.Error()
		} else {
			x = v.Any()
		}
	}

	b, err := json.Marshal(x)
	if err != nil {
		return strconv.Quote(fmt.Sprint(x))
	}

	return string(b)
}

func shortFile(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		if j := strings.LastIndexByte(path[:i], '/'); j >= 0 {
			return path[j+1:]
		}
	}

	return path
}
