package nets

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/reusee/cellbook/cmds"
	"github.com/reusee/cellbook/configs"
	"github.com/reusee/cellbook/logs"
	"github.com/reusee/cellbook/modes"
	"github.com/reusee/cellbook/vars"
	"golang.org/x/net/proxy"
)

// ProxyAddr is the proxy provider requests go through. Empty means
// direct. An address without scheme is a socks5 proxy.
type ProxyAddr string

var proxyAddrFlag = cmds.Var[string]("-proxy", "proxy url for provider requests")

func (Module) ProxyAddr(
	mode modes.Mode,
	loader configs.Loader,
	logger logs.Logger,
) ProxyAddr {
	if mode == modes.ModeDevelopment {
		return ""
	}
	addr := vars.FirstNonZero(
		ProxyAddr(*proxyAddrFlag),
		configs.First[ProxyAddr](loader, "proxy_addr"),
		ProxyAddr(os.Getenv("ALL_PROXY")),
		ProxyAddr(os.Getenv("all_proxy")),
		ProxyAddr(os.Getenv("HTTPS_PROXY")),
		ProxyAddr(os.Getenv("https_proxy")),
		ProxyAddr(os.Getenv("HTTP_PROXY")),
		ProxyAddr(os.Getenv("http_proxy")),
		ProxyAddr(os.Getenv("SOCKS_PROXY")),
		ProxyAddr(os.Getenv("socks_proxy")),
	)
	if addr != "" {
		logger.Debug("proxy", "addr", addr)
	}
	return addr
}

type GetProxyURL func() (*url.URL, error)

func (Module) GetProxyURL(
	proxyAddr ProxyAddr,
) GetProxyURL {
	return sync.OnceValues(func() (*url.URL, error) {
		if proxyAddr == "" {
			return nil, nil
		}
		addr := string(proxyAddr)
		if !strings.Contains(addr, "://") {
			addr = "socks5://" + addr
		}
		u, err := url.Parse(addr)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "socks" {
			u.Scheme = "socks5"
		}
		return u, nil
	})
}

func isHTTPProxy(u *url.URL) bool {
	return u.Scheme == "http" || u.Scheme == "https"
}

// GetProxyDialer returns the dialer for non-local addresses. HTTP
// proxies are handled by ProxyFunc, so their dialer is direct.
type GetProxyDialer func() (Dialer, error)

func (Module) GetProxyDialer(
	getURL GetProxyURL,
) GetProxyDialer {
	direct := &net.Dialer{}
	return sync.OnceValues(func() (Dialer, error) {
		u, err := getURL()
		if err != nil {
			return nil, err
		}
		if u == nil || isHTTPProxy(u) {
			return direct, nil
		}
		dialer, err := proxy.FromURL(u, direct)
		if err != nil {
			return nil, err
		}
		if d, ok := dialer.(Dialer); ok {
			return d, nil
		}
		return DialerFunc(func(_ context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		}), nil
	})
}

// ProxyFunc picks the HTTP proxy of a request for http.Transport.
type ProxyFunc func(*http.Request) (*url.URL, error)

func (Module) ProxyFunc(
	getURL GetProxyURL,
	isLocalAddr IsLocalAddr,
) ProxyFunc {
	return func(req *http.Request) (*url.URL, error) {
		u, err := getURL()
		if err != nil || u == nil || !isHTTPProxy(u) {
			return nil, err
		}
		if local, _ := isLocalAddr(req.Context(), req.URL.Host); local {
			return nil, nil
		}
		return u, nil
	}
}
