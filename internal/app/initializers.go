package app

import (
	"context"
	"fmt"
	"uri-title/internal/domain/config"
	"uri-title/internal/networker"
	"uri-title/internal/pageparser"
	"uri-title/internal/titlefetcher"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
)

// InitApp wires one shared transport, the parser and the fetcher. opts are
// passed to the transport.
func InitApp(cfg *config.Config, opts ...networker.Option) (*TitleApp, error) {
	logger, err := initLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	tp, err := initTracing(cfg.Tracing)
	if err != nil {
		logger.Errorw("failed to init tracing", "err", err)
		return nil, err
	}

	fetcher := initFetcher(logger, cfg, opts...)

	logger.Debugw("app initialized",
		"connectTimeout", cfg.ConnectTimeout,
		"requestTimeout", cfg.RequestTimeout,
		"rejectEmptyTitle", cfg.RejectEmptyTitle,
		"tracing", tp != nil,
	)

	return NewTitleApp(logger, fetcher, tp), nil
}

func initFetcher(logger *zap.SugaredLogger, cfg *config.Config, opts ...networker.Option) titlefetcher.TitleFetcher {
	nw := networker.NewNetworker(logger, cfg, opts...)
	parser := pageparser.NewParserBasic(logger)

	return titlefetcher.NewFetcherRepo(logger, nw, parser, cfg.RejectEmptyTitle)
}

// initTracing returns nil when no collector is configured; the global
// no-op provider then stays in place.
func initTracing(cfg config.TracingConfig) (*sdktrace.TracerProvider, error) {
	if cfg.OTLPEndpoint == "" {
		return nil, nil
	}

	exp, err := otlptracehttp.New(context.Background(), otlptracehttp.WithEndpoint(cfg.OTLPEndpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, fmt.Errorf("init otlp exporter: %w", err)
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("init otel resource: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)

	return tracerProvider, nil
}

// initLogger builds a zap logger writing to stderr; stdout carries results.
func initLogger(cfg config.LogConfig) (*zap.SugaredLogger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
		}
		zapCfg.Level = level
	}

	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	zapLogger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	return zapLogger.Sugar(), nil
}
