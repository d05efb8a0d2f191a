package scraper

import (
	"net/http"
	"sync"
	"time"

	http_tls "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/sirupsen/logrus"
)

// StealthClientManager manages stealth HTTP clients with TLS fingerprint
// spoofing. Clients are cached by proxy URL for connection reuse. Result
// source sites commonly sit behind Cloudflare, which blocks Go's default
// TLS fingerprint.
type StealthClientManager struct {
	clients sync.Map
	timeout time.Duration
}

// NewStealthClientManager creates a new stealth client manager.
func NewStealthClientManager(timeout time.Duration) *StealthClientManager {
	return &StealthClientManager{
		timeout: timeout,
	}
}

// GetClient returns a stealth HTTP client, optionally configured with proxy.
func (m *StealthClientManager) GetClient(proxyURL string) *http.Client {
	cacheKey := proxyURL
	if cacheKey == "" {
		cacheKey = "__direct__"
	}

	if cached, ok := m.clients.Load(cacheKey); ok {
		return cached.(*http.Client)
	}

	client := m.createStealthClient(proxyURL)

	// LoadOrStore handles the create race
	actual, _ := m.clients.LoadOrStore(cacheKey, client)
	return actual.(*http.Client)
}

// createStealthClient creates an HTTP client backed by tls-client with a
// Chrome profile.
func (m *StealthClientManager) createStealthClient(proxyURL string) *http.Client {
	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(m.timeout.Seconds())),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithRandomTLSExtensionOrder(),
	}

	if proxyURL != "" {
		options = append(options, tls_client.WithProxyUrl(proxyURL))
	}

	tlsClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		logrus.WithError(err).WithField("proxy_url", proxyURL).
			Warn("Failed to create stealth client, falling back to standard client")
		return &http.Client{Timeout: m.timeout}
	}

	return &http.Client{
		Transport: &tlsClientTransport{client: tlsClient},
		Timeout:   m.timeout,
	}
}

// tlsClientTransport wraps tls-client to implement http.RoundTripper.
type tlsClientTransport struct {
	client tls_client.HttpClient
}

// RoundTrip implements http.RoundTripper.
func (t *tlsClientTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	fhttpReq := &http_tls.Request{
		Method: req.Method,
		URL:    req.URL,
		Header: convertHeaders(req.Header),
		Body:   req.Body,
	}

	fhttpReq = fhttpReq.WithContext(req.Context())

	fhttpResp, err := t.client.Do(fhttpReq)
	if err != nil {
		return nil, err
	}

	return &http.Response{
		Status:        fhttpResp.Status,
		StatusCode:    fhttpResp.StatusCode,
		Proto:         fhttpResp.Proto,
		ProtoMajor:    fhttpResp.ProtoMajor,
		ProtoMinor:    fhttpResp.ProtoMinor,
		Header:        convertHeadersBack(fhttpResp.Header),
		Body:          fhttpResp.Body,
		ContentLength: fhttpResp.ContentLength,
		Request:       req,
	}, nil
}

// convertHeaders converts standard http.Header to fhttp.Header
func convertHeaders(h http.Header) http_tls.Header {
	fh := make(http_tls.Header, len(h))
	for k, v := range h {
		fh[k] = v
	}
	return fh
}

// convertHeadersBack converts fhttp.Header to standard http.Header
func convertHeadersBack(fh http_tls.Header) http.Header {
	h := make(http.Header, len(fh))
	for k, v := range fh {
		h[k] = v
	}
	return h
}

// browserHeaders returns browser-like HTTP headers for stealth requests.
func browserHeaders() map[string]string {
	return map[string]string{
		"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-IN,en;q=0.9,hi;q=0.8",
		"Accept-Encoding":           "gzip, br",
		"Sec-Ch-Ua":                 `"Not_A Brand";v="8", "Chromium";v="120", "Google Chrome";v="120"`,
		"Sec-Ch-Ua-Mobile":          "?0",
		"Sec-Ch-Ua-Platform":        `"Windows"`,
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Cache-Control":             "no-cache",
		"Pragma":                    "no-cache",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
	}
}

// applyBrowserHeaders applies browser headers, keeping any already set.
func applyBrowserHeaders(req *http.Request) {
	for key, value := range browserHeaders() {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}
}
