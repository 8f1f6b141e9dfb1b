package app

import (
	"context"
	"errors"
	"net/url"
	"uri-title/internal/titlefetcher"
	"uri-title/internal/urlvalidator"
	"uri-title/internal/utils"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

var _ App = (*TitleApp)(nil)

type TitleApp struct {
	logger         *zap.SugaredLogger
	fetcher        titlefetcher.TitleFetcher
	tracerProvider *sdktrace.TracerProvider
}

func NewTitleApp(logger *zap.SugaredLogger, fetcher titlefetcher.TitleFetcher, tp *sdktrace.TracerProvider) *TitleApp {
	return &TitleApp{
		logger:         logger,
		fetcher:        fetcher,
		tracerProvider: tp,
	}
}

func (app *TitleApp) FetchTitle(ctx context.Context, rawURL string) (string, error) {
	callID, err := utils.GenerateID()
	if err != nil {
		app.logger.Warnw("failed to generate call id", "err", err)
	}

	app.logger.Debugw("get url title", "callID", callID, "url", rawURL)

	title, err := app.fetcher.FetchTitle(ctx, rawURL)

	app.logger.Debugw("get url title done", "callID", callID, "title", title, "err", err)
	return title, err
}

func (app *TitleApp) ValidateURL(rawURL string) (*url.URL, error) {
	return urlvalidator.Validate(rawURL)
}

func (app *TitleApp) ReverseLine(line string) string {
	return utils.ReverseLine(line)
}

func (app *TitleApp) StopApp(ctx context.Context) error {
	var errs []error

	if app.tracerProvider != nil {
		if err := app.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	// Sync on stderr returns EINVAL/ENOTTY on some platforms; it is not a
	// real failure.
	_ = app.logger.Sync()

	return errors.Join(errs...)
}
