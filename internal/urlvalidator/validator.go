// Package urlvalidator decides whether a URL is safe to dereference on behalf
// of an untrusted caller. The check is textual only: hosts are never
// resolved, so a public name pointing at a private address is not caught.
package urlvalidator

import (
	"errors"
	"net/url"
	"strings"
	"uri-title/internal/domain/fetcherr"
)

var errEmptyHost = errors.New("empty host")

var allowedSchemes = map[string]struct{}{
	"http":  {},
	"https": {},
}

var forbiddenHosts = map[string]struct{}{
	"localhost": {},
	"127.0.0.1": {},
	"::1":       {},
}

// 172.16.0.0/12 is listed block by block; "172." alone would also hit public
// space like 172.217.x.x.
var forbiddenHostPrefixes = []string{
	"192.168.",
	"10.",
	"172.16.", "172.17.", "172.18.", "172.19.",
	"172.20.", "172.21.", "172.22.", "172.23.",
	"172.24.", "172.25.", "172.26.", "172.27.",
	"172.28.", "172.29.", "172.30.", "172.31.",
}

// Validate parses raw and returns the URL if it uses http(s) and does not
// point at a loopback or private-network host literal. Errors are
// *fetcherr.Error of kind InvalidURL, UnsupportedScheme or ForbiddenHost.
func Validate(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fetcherr.InvalidURL(err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if _, ok := allowedSchemes[scheme]; !ok {
		return nil, fetcherr.UnsupportedScheme(scheme)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return nil, fetcherr.InvalidURL(errEmptyHost)
	}

	if IsForbiddenHost(host) {
		return nil, fetcherr.ForbiddenHost(host)
	}

	return parsed, nil
}

// IsForbiddenHost reports whether host is a denylisted literal or starts with
// one of the private IPv4 prefixes. host must already be lowercased and
// stripped of brackets and port.
func IsForbiddenHost(host string) bool {
	if _, ok := forbiddenHosts[host]; ok {
		return true
	}

	for _, prefix := range forbiddenHostPrefixes {
		if strings.HasPrefix(host, prefix) {
			return true
		}
	}

	return false
}
