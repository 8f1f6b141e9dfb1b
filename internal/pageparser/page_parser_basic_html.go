package pageparser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ExtractTitle returns the whitespace-trimmed text of the first <title>
// element in document order. A present but blank title yields "".
func (p *ParserBasic) ExtractTitle(body []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		p.Logger.Warnw("html parse error", "err", err)
		return "", fmt.Errorf("%w: %w", ErrParseHTML, err)
	}

	title := goquery.NewDocumentFromNode(doc).Find(titleSelector).First()
	if title.Length() == 0 {
		p.Logger.Debugw("no title element", "bytes", len(body))
		return "", ErrNoTitle
	}

	return strings.TrimSpace(title.Text()), nil
}
