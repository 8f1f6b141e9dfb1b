package networker

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
	"uri-title/internal/domain/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

type DialContextFunc func(ctx context.Context, network, addr string) (net.Conn, error)

type Option func(*options)

type options struct {
	dialContext DialContextFunc
}

// WithDialContext replaces the TCP dialer. The connect timeout still applies
// through the request context deadline.
func WithDialContext(dial DialContextFunc) Option {
	return func(o *options) {
		o.dialContext = dial
	}
}

type NetworkWorker struct {
	Logger    *zap.SugaredLogger
	Client    *http.Client
	UserAgent string
}

func NewNetworker(logger *zap.SugaredLogger, cfg *config.Config, opts ...Option) *NetworkWorker {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	dialer := &net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	dial := o.dialContext
	if dial == nil {
		dial = dialer.DialContext
	} else {
		dial = withConnectTimeout(dial, cfg.ConnectTimeout)
	}

	transport := &http.Transport{
		DialContext:         dial,
		TLSHandshakeTimeout: cfg.ConnectTimeout,
		MaxIdleConns:        cfg.MaxIdleConns,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &NetworkWorker{
		Logger: logger,
		Client: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   cfg.RequestTimeout,
		},
		UserAgent: cfg.UserAgent,
	}
}

func withConnectTimeout(dial DialContextFunc, timeout time.Duration) DialContextFunc {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return dial(ctx, network, addr)
	}
}

func (repo *NetworkWorker) Fetch(ctx context.Context, target *url.URL) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}

	req.Header.Set("User-Agent", repo.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	repo.Logger.Debugw("fetch url", "url", target.String())

	resp, err := repo.Client.Do(req)
	if err != nil {
		repo.Logger.Warnw("fetch url error", "url", target.String(), "err", err)
		return nil, err
	}

	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")

	decoded, err := charset.NewReader(resp.Body, contentType)
	if err != nil {
		repo.Logger.Warnw("unsupported response encoding", "url", target.String(), "contentType", contentType, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	body, err := io.ReadAll(decoded)
	if err != nil {
		repo.Logger.Warnw("read body error", "url", target.String(), "err", err)
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if contentType == "" {
		if len(body) > 0 {
			contentType = http.DetectContentType(body)
		} else {
			contentType = "application/octet-stream"
		}
	}

	repo.Logger.Debugw("fetched url", "url", target.String(), "status", resp.StatusCode, "bytes", len(body))

	return &FetchResult{
		Body:        body,
		Status:      resp.StatusCode,
		ContentType: contentType,
	}, nil
}
