package httpx

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// Client is a small wrapper around http.Client with sane defaults for
// talking to quote upstreams: bounded timeout, shared default headers and
// an opt-in TLS verification bypass.
type Client struct {
	HTTP    *http.Client
	Headers map[string]string
}

// New builds a Client with the given total request timeout.
//
// insecureTLS disables certificate verification. Some corporate proxies and
// legacy upstreams need it; it is a security-relevant switch and must stay
// off unless explicitly configured.
func New(timeout time.Duration, insecureTLS bool) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout, Transport: transport},
		Headers: map[string]string{"User-Agent": "olgacolor-back/1.0"},
	}
}

// Do sends the request, applying default headers that the caller did not set.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	for k, v := range c.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	return c.HTTP.Do(req)
}
