package network

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/proxy"
)

// ProxyProvider supplies the proxy URL for outbound model API calls.
// An empty string means a direct connection.
type ProxyProvider interface {
	GetProxyURL(ctx context.Context) string
}

// StaticProxy is a ProxyProvider with a fixed URL.
type StaticProxy string

func (p StaticProxy) GetProxyURL(ctx context.Context) string {
	return string(p)
}

// ClientFactory creates HTTP clients for the provider SDKs. Clients built for
// the same proxy URL share one transport and its connection pool.
type ClientFactory struct {
	proxyProvider ProxyProvider

	mu        sync.Mutex
	proxyURL  string
	transport *http.Transport
}

func NewClientFactory(proxyProvider ProxyProvider) *ClientFactory {
	if proxyProvider == nil {
		proxyProvider = StaticProxy("")
	}
	return &ClientFactory{proxyProvider: proxyProvider}
}

// NewHTTPClient returns a client honoring the current proxy setting.
// A zero timeout leaves timing to the caller's context and the SDK.
func (f *ClientFactory) NewHTTPClient(ctx context.Context, timeout time.Duration) *http.Client {
	client := &http.Client{Timeout: timeout}
	if proxyURL := f.proxyProvider.GetProxyURL(ctx); proxyURL != "" {
		client.Transport = f.transportFor(proxyURL)
	}
	return client
}

// transportFor returns the cached transport for proxyURL. A changed proxy
// replaces the cached one and closes its idle connections.
func (f *ClientFactory) transportFor(proxyURL string) *http.Transport {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.transport != nil && f.proxyURL == proxyURL {
		return f.transport
	}
	if f.transport != nil {
		f.transport.CloseIdleConnections()
	}
	f.proxyURL = proxyURL
	f.transport = newTransportWithProxy(proxyURL)
	return f.transport
}

// GetProxyURL returns the current proxy URL.
func (f *ClientFactory) GetProxyURL(ctx context.Context) string {
	return f.proxyProvider.GetProxyURL(ctx)
}

// newTransportWithProxy uses golang.org/x/net/proxy for socks schemes and
// http.ProxyURL otherwise. Unparseable URLs yield a direct transport.
func newTransportWithProxy(proxyURL string) *http.Transport {
	parsed, err := url.Parse(proxyURL)
	if err != nil || parsed.Host == "" {
		return &http.Transport{}
	}

	if strings.HasPrefix(parsed.Scheme, "socks") {
		var auth *proxy.Auth
		if parsed.User != nil {
			auth = &proxy.Auth{User: parsed.User.Username()}
			if password, ok := parsed.User.Password(); ok {
				auth.Password = password
			}
		}

		dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
		if err != nil {
			return &http.Transport{}
		}

		return &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				if cd, ok := dialer.(proxy.ContextDialer); ok {
					return cd.DialContext(ctx, network, addr)
				}
				return dialer.Dial(network, addr)
			},
		}
	}

	return &http.Transport{
		Proxy: http.ProxyURL(parsed),
	}
}
