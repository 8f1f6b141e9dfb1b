package titlefetcher

import "errors"

var (
	ErrEmptyTitle = errors.New("title element is empty")
)
