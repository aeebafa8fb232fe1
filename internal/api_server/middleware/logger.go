package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// requestLogFormatter prints chi's access line through logrus, tagged with
// the request id and remote address.
type requestLogFormatter struct {
	log logrus.FieldLogger
}

func (f *requestLogFormatter) NewLogEntry(r *http.Request) chimw.LogEntry {
	entry := f.log.WithFields(logrus.Fields{
		"request_id":  chimw.GetReqID(r.Context()),
		"remote_addr": r.RemoteAddr,
	})
	df := &chimw.DefaultLogFormatter{Logger: entry, NoColor: true}
	return df.NewLogEntry(r)
}

func ChiLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return chimw.RequestLogger(ChiLogFormatter(log))
}

func ChiLogFormatter(log logrus.FieldLogger) chimw.LogFormatter {
	return &requestLogFormatter{log: log}
}
