package nets

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/reusee/cellbook/configs"
	"github.com/reusee/cellbook/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}

type Dialer interface {
	Dial(network, addr string) (net.Conn, error)
	DialContext(ctx context.Context, network, addr string) (net.Conn, error)
}

type DialerFunc func(ctx context.Context, network, addr string) (net.Conn, error)

var _ Dialer = DialerFunc(nil)

func (d DialerFunc) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	return d(ctx, network, addr)
}

func (d DialerFunc) Dial(network, addr string) (net.Conn, error) {
	return d(context.Background(), network, addr)
}

// Dialer connects local and private addresses directly, so a provider
// running on this machine is reachable with a proxy configured.
func (Module) Dialer(
	getProxyDialer GetProxyDialer,
	isLocalAddr IsLocalAddr,
) Dialer {
	direct := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return DialerFunc(func(ctx context.Context, network, addr string) (net.Conn, error) {
		local, err := isLocalAddr(ctx, addr)
		if err != nil {
			return nil, err
		}
		if local {
			return direct.DialContext(ctx, network, addr)
		}
		proxyDialer, err := getProxyDialer()
		if err != nil {
			return nil, err
		}
		return proxyDialer.DialContext(ctx, network, addr)
	})
}

type HTTPClient = *http.Client

// HTTPClient has no overall timeout since responses are streamed. Callers
// bound requests with their context.
func (Module) HTTPClient(
	dialer Dialer,
	proxyFunc ProxyFunc,
) HTTPClient {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 proxyFunc,
			DialContext:           dialer.DialContext,
			ForceAttemptHTTP2:     true,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 5 * time.Minute,
			IdleConnTimeout:       90 * time.Second,
			MaxIdleConnsPerHost:   4,
		},
	}
}
