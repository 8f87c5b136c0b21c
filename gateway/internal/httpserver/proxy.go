package httpserver

import (
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	echo "github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/pkg/logging"
)

var upstreamTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 60 * time.Second,
	}).DialContext,
	MaxIdleConns:          200,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

// upstream forwards requests to one portal. A non-empty stripPrefix is cut
// from the path before forwarding.
type upstream struct {
	name        string
	target      *url.URL
	stripPrefix string
	proxy       *httputil.ReverseProxy
}

func newUpstream(name, target, stripPrefix string) (*upstream, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	up := &upstream{name: name, target: u, stripPrefix: stripPrefix}
	up.proxy = &httputil.ReverseProxy{
		Rewrite:       up.rewrite,
		Transport:     upstreamTransport,
		FlushInterval: 100 * time.Millisecond,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logging.FromContext(r.Context()).Error("upstream_error", "upstream", name, "status", http.StatusBadGateway, "error", err)
			w.WriteHeader(http.StatusBadGateway)
		},
	}
	return up, nil
}

func (u *upstream) rewrite(pr *httputil.ProxyRequest) {
	proto := "http"
	if pr.In.TLS != nil {
		proto = "https"
	} else if xf := pr.In.Header.Get("X-Forwarded-Proto"); xf != "" {
		proto = xf
	}
	host := pr.In.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = pr.In.Host
	}

	pr.SetURL(u.target)
	if u.stripPrefix != "" {
		pr.Out.URL.Path = stripped(pr.Out.URL.Path, u.target.Path+u.stripPrefix, u.target.Path)
		if pr.Out.URL.RawPath != "" {
			pr.Out.URL.RawPath = stripped(pr.Out.URL.RawPath, u.target.Path+u.stripPrefix, u.target.Path)
		}
	}

	pr.Out.Header.Set("X-Forwarded-Proto", proto)
	if host != "" {
		pr.Out.Header.Set("X-Forwarded-Host", host)
	}
	if ip, _, err := net.SplitHostPort(pr.In.RemoteAddr); err == nil {
		pr.Out.Header.Set("X-Forwarded-For", ip)
	}
}

func stripped(path, prefix, base string) string {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok {
		return path
	}
	if rest == "" || rest[0] != '/' {
		rest = "/" + rest
	}
	return strings.TrimSuffix(base, "/") + rest
}

func (u *upstream) handler(c echo.Context) error {
	u.proxy.ServeHTTP(c.Response(), c.Request())
	return nil
}
