// Package requestmeta answers scheme and origin questions about incoming
// requests so cookie and CSRF helpers agree on them.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy decides which request signals count when resolving the
// request scheme and origin.
//
// X-Forwarded-Proto is ignored unless TrustForwardedProto is set.
// PublicOrigin, when set, is accepted as an extra same-origin match so a
// proxy that rewrites Host does not break form posts.
type SchemePolicy struct {
	TrustForwardedProto bool
	PublicOrigin        string
}

// origin is a normalized scheme, host and port triple.
type origin struct {
	scheme string
	host   string
	port   string
}

func (o origin) valid() bool {
	return o.scheme != "" && o.host != "" && o.port != ""
}

// Scheme returns "https" or "http" for r.
func (p SchemePolicy) Scheme(r *http.Request) string {
	if r == nil {
		return ""
	}
	if p.TrustForwardedProto {
		if proto := normalizeScheme(r.Header.Get("X-Forwarded-Proto")); proto != "" {
			return proto
		}
	}
	if r.URL != nil {
		if scheme := normalizeScheme(r.URL.Scheme); scheme != "" {
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// IsHTTPS reports whether cookies for r should carry the Secure flag.
func (p SchemePolicy) IsHTTPS(r *http.Request) bool {
	return p.Scheme(r) == "https"
}

// SameOrigin reports whether the Origin header, or the Referer when Origin is
// absent, names the origin r was sent to.
func (p SchemePolicy) SameOrigin(r *http.Request) bool {
	if r == nil {
		return false
	}
	claimed := strings.TrimSpace(r.Header.Get("Origin"))
	if claimed == "" {
		claimed = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if claimed == "" {
		return false
	}
	source, ok := parseOrigin(claimed)
	if !ok {
		return false
	}
	if target := p.requestOrigin(r); target.valid() && source == target {
		return true
	}
	if public, ok := parseOrigin(p.PublicOrigin); ok && source == public {
		return true
	}
	return false
}

// IsHTTPSWithPolicy is shorthand for policy.IsHTTPS(r).
func IsHTTPSWithPolicy(r *http.Request, policy SchemePolicy) bool {
	return policy.IsHTTPS(r)
}

// HasSameOriginProofWithPolicy is shorthand for policy.SameOrigin(r).
func HasSameOriginProofWithPolicy(r *http.Request, policy SchemePolicy) bool {
	return policy.SameOrigin(r)
}

func (p SchemePolicy) requestOrigin(r *http.Request) origin {
	scheme := p.Scheme(r)
	host, port := splitHost(r.Host)
	if host == "" && r.URL != nil {
		host, port = splitHost(r.URL.Host)
	}
	if port == "" {
		port = defaultPort(scheme)
	}
	return origin{scheme: scheme, host: host, port: port}
}

func parseOrigin(raw string) (origin, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return origin{}, false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return origin{}, false
	}
	o := origin{
		scheme: normalizeScheme(parsed.Scheme),
		host:   strings.ToLower(parsed.Hostname()),
		port:   parsed.Port(),
	}
	if o.port == "" {
		o.port = defaultPort(o.scheme)
	}
	return o, o.valid()
}

func normalizeScheme(raw string) string {
	switch scheme := strings.ToLower(strings.TrimSpace(raw)); scheme {
	case "http", "https":
		return scheme
	default:
		return ""
	}
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	}
	return ""
}

func splitHost(raw string) (string, string) {
	parsed, err := url.Parse("//" + strings.TrimSpace(raw))
	if err != nil {
		return "", ""
	}
	return strings.ToLower(parsed.Hostname()), parsed.Port()
}
