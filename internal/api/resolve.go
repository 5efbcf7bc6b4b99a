package api

import (
	"net/url"
	"strings"
)

// ServicePort is the well-known port the ledger service listens on. When an
// origin is known, the client targets the origin's own host on this port, so
// the same physical host works over every network path it is reachable on
// (LAN address, VPN address, localhost).
const ServicePort = "8080"

// DefaultBase is the fallback endpoint when neither an origin nor an
// explicit override is configured.
const DefaultBase = "http://localhost:8080"

// ResolveBase picks the API endpoint. origin is the URL the user reached the
// UI on, when one exists; its scheme and hostname are reused with
// ServicePort. Without an origin the explicit override wins, and with
// neither the local default applies.
func ResolveBase(origin *url.URL, override string) string {
	if origin != nil && origin.Hostname() != "" {
		return origin.Scheme + "://" + origin.Hostname() + ":" + ServicePort
	}
	if override != "" {
		return strings.TrimSuffix(override, "/")
	}
	return DefaultBase
}
