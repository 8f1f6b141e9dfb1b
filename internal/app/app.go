package app

import (
	"context"
	"net/url"
)

// App is the call boundary the editor integration talks to.
type App interface {
	FetchTitle(ctx context.Context, rawURL string) (string, error)
	ValidateURL(rawURL string) (*url.URL, error)
	ReverseLine(line string) string
	StopApp(ctx context.Context) error
}
