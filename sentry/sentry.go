package sentry

import (
	"context"
	"lyrical-api/logcolors"
	"net/http"
	"time"

	sentry "github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	log "github.com/sirupsen/logrus"
)

var enabled bool

// Init configures the Sentry client. An empty DSN leaves reporting disabled.
func Init(dsn, environment, release string, debug bool) error {
	if dsn == "" {
		log.Infof("%s No DSN configured, error reporting disabled", logcolors.LogSentry)
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		Debug:            debug,
		TracesSampleRate: 1.0,
	}); err != nil {
		return err
	}

	enabled = true
	log.Infof("%s Error reporting enabled (environment=%s)", logcolors.LogSentry, environment)
	return nil
}

// Enabled reports whether Init set up a client
func Enabled() bool {
	return enabled
}

// Middleware attaches a hub to every request and reports panics before re-raising them
func Middleware(next http.Handler) http.Handler {
	return sentryhttp.New(sentryhttp.Options{
		Repanic: true,
		Timeout: 2 * time.Second,
	}).Handle(next)
}

// ReportError captures err on the request's hub when there is one
func ReportError(ctx context.Context, err error) {
	if !enabled || err == nil {
		return
	}
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}

// SetContext attaches structured data to events captured on the request's hub
func SetContext(ctx context.Context, name string, value map[string]interface{}) {
	if !enabled {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetContext(name, value)
	})
}

// Flush waits up to timeout for buffered events to be sent
func Flush(timeout time.Duration) bool {
	if !enabled {
		return true
	}
	return sentry.Flush(timeout)
}
