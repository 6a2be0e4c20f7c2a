package client

import (
	"fmt"
	netURL "net/url"
	"strings"
)

// normaliseURL makes sure url carries a scheme. A url without one gets
// protocolScheme, or https:// when no scheme is configured. When
// protocolScheme is set it replaces an existing http:// or https:// prefix.
func normaliseURL(url string, protocolScheme string) (string, error) {
	url = strings.TrimSpace(url)

	// A colon before any slash starts either a port or a scheme, which needs its //
	if i := strings.IndexAny(url, ":/"); i >= 0 && url[i] == ':' && !strings.HasPrefix(url[i:], "://") && !isPort(url[i+1:]) {
		return "", fmt.Errorf("invalid URL format: missing // after scheme")
	}

	if protocolScheme != "" {
		url = strings.TrimPrefix(url, SchemeHTTP)
		url = strings.TrimPrefix(url, SchemeHTTPS)
		if !strings.HasSuffix(protocolScheme, "://") {
			protocolScheme += "://"
		}
		if !strings.HasPrefix(url, protocolScheme) {
			url = protocolScheme + url
		}
	} else if !strings.HasPrefix(url, SchemeHTTP) && !strings.HasPrefix(url, SchemeHTTPS) {
		url = SchemeHTTPS + url
	}

	if _, err := netURL.Parse(url); err != nil {
		return "", err
	}

	return url, nil
}

// isPort reports whether s begins with a port number ending the host part.
func isPort(s string) bool {
	end := strings.IndexAny(s, "/?#")
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return false
	}
	for _, r := range s[:end] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
