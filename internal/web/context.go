package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/bizreg/internal/core"
)

// WithRequestMetadata adds client IP and User-Agent to ctx for submission logs.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	return core.WithRequestMeta(ctx, core.RequestMeta{
		IP:        clientIP(r),
		UserAgent: r.Header.Get("User-Agent"),
	})
}

// clientIP is RemoteAddr without its port. TrustedRealIP has already
// replaced RemoteAddr when the request came through a trusted proxy.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
