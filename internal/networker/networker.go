package networker

import (
	"context"
	"net/url"
)

type FetchResult struct {
	// Body is the response payload decoded to UTF-8.
	Body        []byte
	Status      int
	ContentType string
}

// Networker performs a single GET. Implementations must be safe for
// concurrent use.
type Networker interface {
	Fetch(ctx context.Context, target *url.URL) (*FetchResult, error)
}
