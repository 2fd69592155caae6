package httpfetch

import (
	"net/http"
	"net/url"
	"sync"
)

// ProxyRotator hands out outbound proxies in round-robin order.
type ProxyRotator struct {
	proxies    []*url.URL
	mu         sync.Mutex
	proxyIndex int
}

// NewProxyRotator parses the configured proxy URLs, skipping entries that do not parse.
func NewProxyRotator(rawProxies []string) *ProxyRotator {
	r := &ProxyRotator{}
	for _, raw := range rawProxies {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			continue
		}
		r.proxies = append(r.proxies, u)
	}
	return r
}

// Len returns the number of usable proxies.
func (r *ProxyRotator) Len() int {
	return len(r.proxies)
}

// Next returns a proxy URL from the list, rotating sequentially. Nil means no proxy.
func (r *ProxyRotator) Next() *url.URL {
	if len(r.proxies) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	proxy := r.proxies[r.proxyIndex]
	r.proxyIndex = (r.proxyIndex + 1) % len(r.proxies)
	return proxy
}

// Proxy matches the http.Transport.Proxy signature.
func (r *ProxyRotator) Proxy(_ *http.Request) (*url.URL, error) {
	return r.Next(), nil
}
