package titlefetcher

import (
	"context"
	"uri-title/internal/domain/fetcherr"
	"uri-title/internal/networker"
	"uri-title/internal/pageparser"
	"uri-title/internal/urlvalidator"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "uri-title/internal/titlefetcher"

type FetcherRepo struct {
	Logger    *zap.SugaredLogger
	Networker networker.Networker
	Parser    pageparser.PageParser
	Tracer    trace.Tracer

	RejectEmptyTitle bool
}

func NewFetcherRepo(logger *zap.SugaredLogger, networker networker.Networker, parser pageparser.PageParser, rejectEmptyTitle bool) *FetcherRepo {
	return &FetcherRepo{
		Logger:           logger,
		Networker:        networker,
		Parser:           parser,
		Tracer:           otel.Tracer(tracerName),
		RejectEmptyTitle: rejectEmptyTitle,
	}
}

// FetchTitle validates rawURL, performs one GET and returns the trimmed text
// of the first <title>. The first failing stage ends the call.
func (repo *FetcherRepo) FetchTitle(ctx context.Context, rawURL string) (string, error) {
	ctx, span := repo.Tracer.Start(ctx, "titlefetcher.FetchTitle")
	defer span.End()

	title, err := repo.fetchTitle(ctx, rawURL)
	if err != nil {
		kind := fetcherr.KindOf(err)
		span.SetAttributes(attribute.String("uri_title.error_kind", kind.String()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		repo.Logger.Infow("failed to get url title", "url", rawURL, "kind", kind.String(), "retryable", kind.Retryable(), "err", err)
		return "", err
	}

	repo.Logger.Infow("got url title", "url", rawURL, "title", title)
	return title, nil
}

func (repo *FetcherRepo) fetchTitle(ctx context.Context, rawURL string) (string, error) {
	target, err := urlvalidator.Validate(rawURL)
	if err != nil {
		return "", err
	}

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("url.scheme", target.Scheme),
		attribute.String("server.address", target.Hostname()),
	)

	repo.Logger.Debugw("fetching url title", "url", target.String())

	fetchRes, err := repo.Networker.Fetch(ctx, target)
	if err != nil {
		return "", fetcherr.HTTP(err)
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.response.status_code", fetchRes.Status))

	title, err := repo.Parser.ExtractTitle(fetchRes.Body)
	if err != nil {
		return "", fetcherr.HTML(err)
	}

	if repo.RejectEmptyTitle && title == "" {
		return "", fetcherr.HTML(ErrEmptyTitle)
	}

	return title, nil
}
