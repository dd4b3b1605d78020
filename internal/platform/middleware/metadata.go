package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/mssola/useragent"

	"rutcheck/pkg/requestcontext"
)

// ClientMetadata extracts client IP, User-Agent and parsed device info from
// the request and adds them to the context. Forwarding headers are honoured
// only when the peer is inside one of the trusted proxy prefixes.
// This middleware should be applied early in the chain.
func ClientMetadata(trustedProxies []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua := r.Header.Get("User-Agent")
			ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r, trustedProxies), ua)
			ctx = requestcontext.WithDevice(ctx, ParseDevice(ua))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ParseDevice summarizes a User-Agent string.
func ParseDevice(ua string) requestcontext.DeviceInfo {
	if ua == "" {
		return requestcontext.DeviceInfo{}
	}
	parsed := useragent.New(ua)
	browser, _ := parsed.Browser()
	return requestcontext.DeviceInfo{
		Browser: browser,
		OS:      parsed.OS(),
		Mobile:  parsed.Mobile(),
	}
}

// ClientIPFromRequest extracts the client IP. X-Forwarded-For and X-Real-IP
// are read only when RemoteAddr is a trusted proxy; X-Forwarded-For is walked
// right to left and the first hop outside the trusted prefixes wins.
func ClientIPFromRequest(r *http.Request, trustedProxies []netip.Prefix) string {
	peer := remoteHost(r.RemoteAddr)
	if peer == "" {
		return "unknown"
	}
	if !isTrusted(peer, trustedProxies) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if i == 0 || !isTrusted(hop, trustedProxies) {
				return hop
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return peer
}

// remoteHost strips the port from RemoteAddr, including IPv6 brackets.
func remoteHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.Trim(addr, "[]")
}

func isTrusted(ip string, prefixes []netip.Prefix) bool {
	if len(prefixes) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
