package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/facemenu/pkg/app"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Runner coordinates MCP server startup.
type Runner struct {
	App     *app.Service
	Name    string
	Version string

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
}

// Run starts the Model Context Protocol server using stdio transport.
func Run(ctx context.Context, svc *app.Service) error {
	r := Runner{
		App:       svc,
		Name:      "facemenu",
		Version:   "dev",
		Transport: TransportStdio,
	}
	return r.Do(ctx)
}

// RunHTTP starts the MCP server over HTTP at the provided address.
func RunHTTP(ctx context.Context, svc *app.Service, addr string) error {
	r := Runner{
		App:              svc,
		Name:             "facemenu",
		Version:          "dev",
		Transport:        TransportHTTP,
		HTTPListenAddr:   addr,
		HTTPEndpointPath: "/mcp",
	}
	return r.Do(ctx)
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.App == nil {
		return ErrNoService
	}
	name := r.Name
	if name == "" {
		name = "facemenu"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Inspect and edit avatar expression menus: modes, groups, branches, conditions, animations and merges with existing menu items."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(r.App)
	registerResources(srv, svc)
	registerTools(srv, svc)

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

// EndpointPath returns HTTPEndpointPath with a leading slash, or /mcp.
func (r Runner) EndpointPath() string {
	path := strings.TrimSpace(r.HTTPEndpointPath)
	if path == "" {
		return "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// URL is the address clients reach the endpoint at once the server listens
// on addr. Unspecified hosts are shown as loopback.
func (r Runner) URL(addr net.Addr) string {
	scheme := "http"
	if r.HTTPServerCert != "" {
		scheme = "https"
	}
	host, port := "127.0.0.1", ""
	if tcp, ok := addr.(*net.TCPAddr); ok {
		if tcp.IP != nil && !tcp.IP.IsUnspecified() {
			host = tcp.IP.String()
		}
		port = strconv.Itoa(tcp.Port)
	} else if h, p, err := net.SplitHostPort(addr.String()); err == nil {
		host, port = h, p
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, port), r.EndpointPath())
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	if (r.HTTPServerCert == "") != (r.HTTPServerKey == "") {
		return errors.New("both http tls cert and key must be provided")
	}

	listenAddr := r.HTTPListenAddr
	if listenAddr == "" {
		listenAddr = "127.0.0.1:8080"
	}
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle(r.EndpointPath(), server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux}

	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if r.HTTPServerCert != "" {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
