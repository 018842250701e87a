package app

import (
	"context"
	"net/http"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/ccaceres17/supercatalogue/internal/cart"
	"github.com/ccaceres17/supercatalogue/internal/cli"
	"github.com/ccaceres17/supercatalogue/internal/fakestore"
	"github.com/ccaceres17/supercatalogue/internal/favorites"
	"github.com/ccaceres17/supercatalogue/internal/session"
	"github.com/ccaceres17/supercatalogue/internal/storage/file"
	"github.com/ccaceres17/supercatalogue/pkg/httpclient"
)

// Run creates all dependencies, restores persisted state, and dispatches the
// command-line arguments. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config, args []string) error {
	lg.Debug("Initializing",
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.String("state_dir", cfg.StateDir),
	)

	// Persistent store, one file per key.
	store, err := file.New(cfg.StateDir)
	if err != nil {
		return errors.Wrap(err, "open state store")
	}

	// Remote client with request IDs, retries, logging, and tracing on the
	// transport. Request IDs sit outermost so one id covers all retries of
	// a request.
	transport := httpclient.Wrap(
		otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
		httpclient.RequestID(),
		httpclient.Retry(httpclient.RetryConfig{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseDelay:   cfg.Retry.BaseDelay,
		}),
		httpclient.LogRequests(lg.Named("http")),
	)
	remote := fakestore.New(cfg.APIBaseURL, &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	})

	// State services, restored from their persisted snapshots.
	sessionSvc := session.NewService(store, remote, lg.Named("session"))
	cartSvc := cart.NewService(store, remote, sessionSvc, lg.Named("cart"))
	favSvc := favorites.NewService(store, lg.Named("favorites"))
	sessionSvc.Restore()
	cartSvc.Restore()
	favSvc.Restore()

	return cli.Run(ctx, cli.Deps{
		Catalog:       remote,
		Session:       sessionSvc,
		Cart:          cartSvc,
		Favorites:     favSvc,
		History:       remote,
		CheckoutDelay: cfg.CheckoutDelay,
		Out:           os.Stdout,
		Lg:            lg,
	}, args)
}
