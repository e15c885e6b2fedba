package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds a transport proxy selector from explicit proxy
// URLs. With neither override set it defers entirely to the standard
// HTTP_PROXY/HTTPS_PROXY/NO_PROXY environment handling.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		switch {
		case req.URL.Scheme == "https" && httpsProxy != "":
			return url.Parse(httpsProxy)
		case httpProxy != "":
			return url.Parse(httpProxy)
		default:
			return http.ProxyFromEnvironment(req)
		}
	}
}
