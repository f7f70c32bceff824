package main

import (
	"context"
	"errors"
	"fmt"
	"lyrical-api/config"
	"lyrical-api/logcolors"
	"lyrical-api/middleware"
	"lyrical-api/sentry"
	"lyrical-api/services/providers"
	"lyrical-api/services/providers/genius"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func setupLogging(debug bool) {
	log.SetOutput(os.Stdout)
	if debug {
		log.SetFormatter(&nested.Formatter{
			HideKeys:        true,
			TimestampFormat: time.RFC3339,
		})
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

// newHandler builds the router and wraps it in the middleware chain
func newHandler(conf config.Config, provider providers.Provider) http.Handler {
	router := mux.NewRouter()
	setupRoutes(router, newServer(conf, provider))
	return wrapHandler(router, conf)
}

// wrapHandler applies the middleware chain; the request logger wraps the 401 rewrite
func wrapHandler(next http.Handler, conf config.Config) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   conf.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := middleware.UnauthorizedHandler(next)
	handler = middleware.LoggingMiddleware(handler)
	handler = c.Handler(handler)
	return sentry.Middleware(handler)
}

func main() {
	flags, err := parseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	conf, err := config.Load()
	if err != nil {
		log.Fatalf("%s Invalid configuration: %v", logcolors.LogConfig, err)
	}
	flags.apply(&conf)

	setupLogging(conf.Server.Debug)

	if err := sentry.Init(conf.Sentry.DSN, conf.Sentry.Environment, conf.Sentry.Release, conf.Server.Debug); err != nil {
		log.Warnf("%s Failed to initialize: %v", logcolors.LogSentry, err)
	}

	client := genius.NewClient(genius.ClientConfig{
		BaseURL:     conf.Genius.BaseURL,
		AccessToken: conf.Genius.AccessToken,
		UserAgent:   conf.Genius.UserAgent,
		Timeout:     conf.RequestTimeout(),
	})
	provider := genius.NewProvider(client)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", conf.Server.Port),
		Handler:           newHandler(conf, provider),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		log.Infof("%s Server listening on port %d", logcolors.LogServer, conf.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		log.Infof("%s Received %v, shutting down", logcolors.LogServer, sig)
	case err := <-errChan:
		sentry.ReportError(context.Background(), err)
		sentry.Flush(2 * time.Second)
		log.Fatalf("%s Server error: %v", logcolors.LogServer, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("%s Error during shutdown: %v", logcolors.LogServer, err)
	}
	sentry.Flush(conf.ShutdownTimeout())
	log.Infof("%s Server stopped", logcolors.LogServer)
}
