package nets

import (
	"context"
	"net"
	"strings"
)

// IsLocalAddr reports whether addr, with or without a port, is a
// loopback or private address.
type IsLocalAddr func(ctx context.Context, addr string) (bool, error)

func (Module) IsLocalAddr() IsLocalAddr {
	return func(ctx context.Context, addr string) (bool, error) {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr
		}
		host = strings.Trim(host, "[]")

		if strings.EqualFold(host, "localhost") {
			return true, nil
		}
		if ip := net.ParseIP(host); ip != nil {
			return isLocalIP(ip), nil
		}

		addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
		if err != nil {
			// unresolvable hosts go through the proxy
			return false, nil
		}
		for _, a := range addrs {
			if isLocalIP(a.IP) {
				return true, nil
			}
		}
		return false, nil
	}
}

func isLocalIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate()
}
