// Package proxy implements the backend-for-frontend forwarder. It
// relays authenticated browser requests to the upstream booking API
// without touching them: the booking form's conflict handling depends
// on the upstream 409/400 status codes and bodies arriving verbatim.
package proxy

import (
    "net/http"
    "net/http/httputil"
    "net/url"
    "strings"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"
)

// RemotePrefix is the path prefix the SPA uses for forwarded API calls.
const RemotePrefix = "/remote"

// Forwarder reverse-proxies /remote/* requests onto the upstream API
// base path. The incoming Authorization header travels with the
// request, so the upstream performs its own token validation as well.
type Forwarder struct {
    rp  *httputil.ReverseProxy
    log *zap.Logger
}

// NewForwarder builds a Forwarder for the given upstream base URL,
// e.g. "http://localhost:8080/v1". The upstream path is prepended to
// the forwarded path after the /remote prefix is stripped, so
// /remote/bookings becomes /v1/bookings.
func NewForwarder(upstream *url.URL, log *zap.Logger) *Forwarder {
    if log == nil {
        log = zap.NewNop()
    }
    rp := &httputil.ReverseProxy{
        Rewrite: func(pr *httputil.ProxyRequest) {
            pr.SetURL(upstream)
            rest := strings.TrimPrefix(pr.In.URL.Path, RemotePrefix)
            pr.Out.URL.Path = singleJoin(upstream.Path, rest)
            pr.Out.Host = upstream.Host
        },
        ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
            log.Warn("bff: upstream unreachable", zap.String("path", r.URL.Path), zap.Error(err))
            w.Header().Set("Content-Type", "application/json")
            w.WriteHeader(http.StatusBadGateway)
            _, _ = w.Write([]byte(`{"error":"upstream unavailable"}`))
        },
    }
    return &Forwarder{rp: rp, log: log}
}

// Handle adapts the proxy to an echo route. Status codes and bodies
// from the upstream pass through unmodified, 409 and 400 included.
func (f *Forwarder) Handle(c echo.Context) error {
    f.rp.ServeHTTP(c.Response(), c.Request())
    return nil
}

func singleJoin(a, b string) string {
    aslash := strings.HasSuffix(a, "/")
    bslash := strings.HasPrefix(b, "/")
    switch {
    case aslash && bslash:
        return a + b[1:]
    case !aslash && !bslash:
        return a + "/" + b
    }
    return a + b
}
