package networker

import "errors"

var (
	ErrRequest = errors.New("build request")
	ErrDecode  = errors.New("decode response body")
)
