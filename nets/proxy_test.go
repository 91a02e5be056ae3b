package nets

import (
	"net"
	"net/http/httptest"
	"testing"

	"github.com/reusee/cellbook/configs"
	"github.com/reusee/cellbook/modes"
	"github.com/reusee/dscope"
)

func TestProxyAddrInTest(t *testing.T) {
	t.Setenv("ALL_PROXY", "socks://127.0.0.1:1080")
	dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoader(nil, "")),
	).Call(func(
		addr ProxyAddr,
		getURL GetProxyURL,
	) {
		if addr != "" {
			t.Fatalf("got %q", addr)
		}
		u, err := getURL()
		if err != nil {
			t.Fatal(err)
		}
		if u != nil {
			t.Fatalf("got %v", u)
		}
	})
}

func TestSocksScheme(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoader(nil, "")),
	).Fork(
		func() ProxyAddr {
			return "socks://127.0.0.1:1080"
		},
	).Call(func(
		getURL GetProxyURL,
		getDialer GetProxyDialer,
	) {
		u, err := getURL()
		if err != nil {
			t.Fatal(err)
		}
		if u.Scheme != "socks5" {
			t.Fatalf("got %v", u)
		}
		if _, err := getDialer(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestHTTPProxy(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoader(nil, "")),
	).Fork(
		func() ProxyAddr {
			return "http://proxy.example:3128"
		},
	).Call(func(
		proxyFunc ProxyFunc,
		getDialer GetProxyDialer,
	) {
		dialer, err := getDialer()
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := dialer.(*net.Dialer); !ok {
			t.Fatalf("got %T", dialer)
		}

		req := httptest.NewRequest("GET", "https://api.openai.com/v1/models", nil)
		u, err := proxyFunc(req)
		if err != nil {
			t.Fatal(err)
		}
		if u == nil || u.Host != "proxy.example:3128" {
			t.Fatalf("got %v", u)
		}

		req = httptest.NewRequest("GET", "http://127.0.0.1:11434/v1/models", nil)
		u, err = proxyFunc(req)
		if err != nil {
			t.Fatal(err)
		}
		if u != nil {
			t.Fatalf("got %v", u)
		}
	})
}

func TestBareProxyAddr(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoader(nil, "")),
	).Fork(
		func() ProxyAddr {
			return "127.0.0.1:1080"
		},
	).Call(func(
		getURL GetProxyURL,
		proxyFunc ProxyFunc,
	) {
		u, err := getURL()
		if err != nil {
			t.Fatal(err)
		}
		if u.Scheme != "socks5" || u.Host != "127.0.0.1:1080" {
			t.Fatalf("got %v", u)
		}
		req := httptest.NewRequest("GET", "https://api.openai.com/v1/models", nil)
		if u, _ := proxyFunc(req); u != nil {
			t.Fatalf("socks proxies are dialed, got %v", u)
		}
	})
}
