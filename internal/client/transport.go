package client

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// loggingTransport stamps a request id on every call and logs the outcome.
type loggingTransport struct {
	next   http.RoundTripper
	log    *logrus.Logger
	header string
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	id := uuid.NewString()
	if t.header != "" && req.Header.Get(t.header) == "" {
		// RoundTrippers must not mutate the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set(t.header, id)
	}
	resp, err := t.next.RoundTrip(req)
	entry := t.log.WithFields(logrus.Fields{
		"method":     req.Method,
		"path":       req.URL.Path,
		"request_id": id,
		"duration":   time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Warn("request failed")
		return nil, err
	}
	entry = entry.WithField("status", resp.StatusCode)
	if resp.StatusCode >= http.StatusBadRequest {
		entry.Warn("request rejected")
	} else {
		entry.Debug("request completed")
	}
	return resp, nil
}
