package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/runner/mcp"
)

type mcpOptions struct {
	Transport string
	Host      string
	Port      int
	Path      string
	TLSCert   string
	TLSKey    string
}

func addMCP(topLevel *cobra.Command) {
	o := &mcpOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes stored menus as resources and every menu
operation as a tool through the Model Context Protocol.`,
		Example: `
facemenu mcp
facemenu mcp --transport stdio
facemenu mcp --http-port 0
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}

			runner := mcp.Runner{
				App:              e.app,
				Name:             "facemenu",
				Version:          version,
				HTTPEndpointPath: o.Path,
				HTTPServerCert:   strings.TrimSpace(o.TLSCert),
				HTTPServerKey:    strings.TrimSpace(o.TLSKey),
			}

			switch strings.ToLower(strings.TrimSpace(o.Transport)) {
			case "", string(mcp.TransportHTTP):
				if o.Port < 0 || o.Port > 65535 {
					return fmt.Errorf("invalid http-port %d", o.Port)
				}
				host := strings.TrimSpace(o.Host)
				if host == "" {
					host = "127.0.0.1"
				}
				runner.Transport = mcp.TransportHTTP
				runner.HTTPListenAddr = net.JoinHostPort(host, strconv.Itoa(o.Port))
				runner.OnHTTPListening = func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n", runner.URL(a))
				}
			case string(mcp.TransportStdio):
				runner.Transport = mcp.TransportStdio
			default:
				return fmt.Errorf("unsupported transport %q (expected http or stdio)", o.Transport)
			}

			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&o.Transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&o.Host, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&o.Port, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&o.Path, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&o.TLSCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&o.TLSKey, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}
