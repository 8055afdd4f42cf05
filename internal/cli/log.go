package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sheetdock/pkg/geom"
	"github.com/matzehuels/sheetdock/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Interaction Hooks
// =============================================================================

// logHooks writes interaction events to a logger at debug level.
type logHooks struct {
	logger *log.Logger
}

var _ observability.InteractionHooks = (*logHooks)(nil)

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("snap")}
}

func (h *logHooks) OnFocusChange(pointer, effective int) {
	h.logger.Debug("focus", "pointer", pointer, "effective", effective)
}

func (h *logHooks) OnSessionOpen(session string, sheet int, reason string, candidates int) {
	h.logger.Debug("session open", "id", shortID(session), "sheet", sheet, "reason", reason, "candidates", candidates)
}

func (h *logHooks) OnSessionClose(session string, sheet int, updates, snaps int) {
	h.logger.Debug("session close", "id", shortID(session), "sheet", sheet, "updates", updates, "snaps", snaps)
}

func (h *logHooks) OnSnap(session string, sheet int, at geom.Vec, rotDelta float64) {
	h.logger.Debug("snap", "id", shortID(session), "sheet", sheet,
		"x", at.X, "y", at.Y, "rot", geom.Deg(rotDelta))
}

// shortID trims a session UUID to its first group for log readability.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
