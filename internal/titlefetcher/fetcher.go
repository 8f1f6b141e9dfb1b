package titlefetcher

import "context"

// TitleFetcher resolves a user-supplied URL to its page title. Every error is
// a *fetcherr.Error.
type TitleFetcher interface {
	FetchTitle(ctx context.Context, rawURL string) (string, error)
}
