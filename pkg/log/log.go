package log

import (
	"context"
	"io"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions controls rotation of a log file. Zero values use lumberjack's
// defaults (100 MB, keep every backup forever).
type FileOptions struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func InitLogs() *logrus.Logger {
	log := logrus.New()

	log.SetReportCaller(true)

	return log
}

// SetFileOutput redirects log to a size-rotated file at path. The returned
// closer releases the file; the logger must not be used after closing it.
func SetFileOutput(log *logrus.Logger, path string, opts FileOptions) io.Closer {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}
	log.SetOutput(w)
	return w
}

// SetLevel applies a textual level to the logger, falling back to info for
// unknown values. It returns the level that ended up being used.
func SetLevel(log *logrus.Logger, level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return lvl
}

// WithReqIDFromCtx create logger with request id from the context, request id is set by the RequestID middleware
func WithReqIDFromCtx(ctx context.Context, inner logrus.FieldLogger) logrus.FieldLogger {
	return WithReqID(middleware.GetReqID(ctx), inner)
}

func WithReqID(reqID string, inner logrus.FieldLogger) logrus.FieldLogger {
	if reqID == "" {
		return inner
	}
	return inner.WithField("request_id", reqID)
}
