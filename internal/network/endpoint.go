package network

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	ma "github.com/multiformats/go-multiaddr"
)

// ErrNoHost is returned when a network config carries no host.
var ErrNoHost = errors.New("network host not configured")

// baseURL turns a configured host into a scheme://host[:port][/prefix] URL
// without a trailing slash.
func baseURL(host string) (string, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", ErrNoHost
	}
	if strings.HasPrefix(host, "/") {
		return fromMultiaddr(host)
	}
	u, err := url.Parse(host)
	if err != nil {
		return "", fmt.Errorf("invalid network host %q: %w", host, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid network host %q: want an http(s) URL or a multiaddr", host)
	}
	return strings.TrimSuffix(u.Scheme+"://"+u.Host+u.Path, "/"), nil
}

func fromMultiaddr(s string) (string, error) {
	addr, err := ma.NewMultiaddr(s)
	if err != nil {
		return "", fmt.Errorf("invalid network multiaddr %q: %w", s, err)
	}

	var hostname string
	for _, code := range []int{ma.P_DNS, ma.P_DNS4, ma.P_DNS6, ma.P_IP4, ma.P_IP6} {
		if v, err := addr.ValueForProtocol(code); err == nil {
			hostname = v
			break
		}
	}
	if hostname == "" {
		return "", fmt.Errorf("network multiaddr %q: no dns or ip component", s)
	}
	port, err := addr.ValueForProtocol(ma.P_TCP)
	if err != nil {
		return "", fmt.Errorf("network multiaddr %q: no tcp component", s)
	}

	scheme := "http"
	if _, err := addr.ValueForProtocol(ma.P_HTTPS); err == nil {
		scheme = "https"
	} else if _, err := addr.ValueForProtocol(ma.P_TLS); err == nil {
		scheme = "https"
	}
	return scheme + "://" + net.JoinHostPort(hostname, port), nil
}
