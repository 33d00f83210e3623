// package mediaproxy streams upstream media segments to the player.
//
// Generated manifests rewrite every segment URL to this handler so the
// browser never talks to the CDN directly. The original host travels in the
// query and is restored on the outbound request.
package mediaproxy

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/VimVoyager/opentube-frontend/cmd/web/handlers/common"
	"github.com/VimVoyager/opentube-frontend/internal/metrics"
)

// Passed through from the upstream response so range playback keeps working.
var passthroughHeaders = []string{
	"Content-Type",
	"Content-Length",
	"Content-Range",
	"Accept-Ranges",
	"Last-Modified",
	"ETag",
}

// Proxy forwards media requests to the upstream CDN.
type Proxy struct {
	http         *http.Client
	allowedHosts []string
}

// NewProxy builds a media proxy. allowedHosts is a comma-separated list of
// host suffixes; empty allows any host.
func NewProxy(allowedHosts string) *Proxy {
	p := &Proxy{
		// No overall timeout: segment downloads are long-running streams.
		// Dialing and TLS are still bounded by the default transport.
		http: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 4 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
	for _, part := range strings.Split(allowedHosts, ",") {
		if v := strings.TrimSpace(part); v != "" {
			p.allowedHosts = append(p.allowedHosts, strings.ToLower(v))
		}
	}
	return p
}

// HandleMedia streams one media segment.
// Route: GET /proxy/media?url=&host=
func (p *Proxy) HandleMedia() echo.HandlerFunc {
	return func(c echo.Context) error {
		target, err := p.parseTarget(c.QueryParam("url"), c.QueryParam("host"))
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, target.String(), nil)
		if err != nil {
			return common.ErrBadRequest("invalid url")
		}
		for _, h := range []string{"Range", "If-Range", "If-None-Match", "If-Modified-Since"} {
			if v := c.Request().Header.Get(h); v != "" {
				req.Header.Set(h, v)
			}
		}

		resp, err := p.http.Do(req)
		if err != nil {
			return common.MapUpstreamError(c, err, "")
		}
		defer resp.Body.Close()

		for _, h := range passthroughHeaders {
			if v := resp.Header.Get(h); v != "" {
				c.Response().Header().Set(h, v)
			}
		}
		c.Response().WriteHeader(resp.StatusCode)

		n, err := io.Copy(c.Response(), resp.Body)
		metrics.ProxyBytes(n)
		return err
	}
}

// parseTarget validates the requested URL and restores the upstream host.
func (p *Proxy) parseTarget(rawURL, host string) (*url.URL, error) {
	if rawURL == "" {
		return nil, common.ErrBadRequest("missing url")
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, common.ErrBadRequest("invalid url")
	}
	if host != "" {
		u.Host = host
	}
	if u.Host == "" {
		return nil, common.ErrBadRequest("missing host")
	}
	if !p.hostAllowed(u.Hostname()) {
		return nil, common.ErrBadRequest("host not allowed")
	}
	return u, nil
}

func (p *Proxy) hostAllowed(host string) bool {
	if len(p.allowedHosts) == 0 {
		return true
	}
	host = strings.ToLower(host)
	for _, suffix := range p.allowedHosts {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return true
		}
	}
	return false
}
