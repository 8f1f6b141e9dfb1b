package pageparser

import "errors"

var (
	ErrNoTitle   = errors.New("no title element found")
	ErrParseHTML = errors.New("parse html document")
)

// PageParser pulls the page title out of a decoded HTML body.
type PageParser interface {
	ExtractTitle(body []byte) (string, error)
}

const titleSelector = "title"
