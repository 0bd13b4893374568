package mcp

import (
	"context"
	"errors"
	"net"
	"testing"
)

func TestRunnerURL(t *testing.T) {
	tests := []struct {
		name   string
		runner Runner
		addr   net.Addr
		want   string
	}{{
		name:   "default path",
		runner: Runner{},
		addr:   &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080},
		want:   "http://127.0.0.1:8080/mcp",
	}, {
		name:   "unspecified host",
		runner: Runner{HTTPEndpointPath: "menus"},
		addr:   &net.TCPAddr{IP: net.IPv4zero, Port: 9000},
		want:   "http://127.0.0.1:9000/menus",
	}, {
		name:   "ipv6 with tls",
		runner: Runner{HTTPServerCert: "c.pem", HTTPServerKey: "k.pem"},
		addr:   &net.TCPAddr{IP: net.IPv6loopback, Port: 443},
		want:   "https://[::1]:443/mcp",
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.runner.URL(tt.addr); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRunnerNeedsService(t *testing.T) {
	if err := (Runner{}).Do(context.Background()); !errors.Is(err, ErrNoService) {
		t.Fatalf("expected ErrNoService, got %v", err)
	}
}
