package web

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/samvad-hq/cryptonews-reader/internal/logger"
)

// newsProxy forwards /cc/<path> to <upstream>/<path> so browser clients can
// reach the news API without CORS.
type newsProxy struct {
	rp *httputil.ReverseProxy
}

func newNewsProxy(upstream string, log logger.Logger) (*newsProxy, error) {
	target, err := url.Parse(upstream)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid proxy upstream %q", upstream)
	}

	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.WarnObj("news proxy upstream failed", "proxy_error", map[string]any{
				"path":  r.URL.Path,
				"error": err.Error(),
			})
			w.WriteHeader(http.StatusBadGateway)
		},
	}
	return &newsProxy{rp: rp}, nil
}

func (p *newsProxy) handle(c *gin.Context) {
	req := c.Request.Clone(c.Request.Context())
	req.URL.Path = c.Param("path")
	req.URL.RawPath = ""
	p.rp.ServeHTTP(c.Writer, req)
}
