package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/syllabus/pkg/runner/mcp"
)

type mcpOptions struct {
	transport string
	host      string
	port      int
	path      string
	tlsCert   string
	tlsKey    string
}

func addMCP(topLevel *cobra.Command) {
	o := &mcpOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the catalog to MCP clients.",
		Long: base.Wrap80(`Serve the catalog over the Model Context Protocol. Each connected client
gets its own browsing session, so subject, module and topic selections made
by one agent never leak into another. Bookmarks are shared with the CLI and
the terminal browser.`),
		Example: `
syllabus mcp
syllabus mcp --transport stdio
syllabus mcp --listen-port 0 --endpoint /syllabus
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(cmd.Context(), true)
			if err != nil {
				return err
			}
			runner := mcp.Runner{
				App:     svc,
				Name:    "syllabus",
				Version: version,
			}
			if err := o.apply(&runner, func(u string) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "syllabus MCP endpoint: %s\n", u)
			}); err != nil {
				return err
			}
			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&o.transport, "transport", string(mcp.TransportHTTP), "How clients connect: http or stdio.")
	cmd.Flags().StringVar(&o.host, "listen-host", "127.0.0.1", "Interface to bind when serving over http.")
	cmd.Flags().IntVar(&o.port, "listen-port", 8080, "Port to bind when serving over http. 0 picks a free port.")
	cmd.Flags().StringVar(&o.path, "endpoint", "/mcp", "URL path that answers MCP requests.")
	cmd.Flags().StringVar(&o.tlsCert, "tls-cert", "", "Certificate file. Serves https together with --tls-key.")
	cmd.Flags().StringVar(&o.tlsKey, "tls-key", "", "Private key file for --tls-cert.")

	topLevel.AddCommand(cmd)
}

// apply validates the flags and configures the runner transport. announce
// receives the endpoint URL once the http listener is bound.
func (o *mcpOptions) apply(r *mcp.Runner, announce func(string)) error {
	switch strings.ToLower(strings.TrimSpace(o.transport)) {
	case string(mcp.TransportStdio):
		r.Transport = mcp.TransportStdio
		return nil
	case "", string(mcp.TransportHTTP):
	default:
		return fmt.Errorf("transport %q is not one of http, stdio", o.transport)
	}

	if o.port < 0 || o.port > 65535 {
		return fmt.Errorf("listen-port %d is out of range", o.port)
	}
	host := strings.TrimSpace(o.host)
	if host == "" {
		host = "127.0.0.1"
	}
	path := endpointPath(o.path)

	r.Transport = mcp.TransportHTTP
	r.HTTPListenAddr = net.JoinHostPort(host, strconv.Itoa(o.port))
	r.HTTPEndpointPath = path
	r.HTTPServerCert = strings.TrimSpace(o.tlsCert)
	r.HTTPServerKey = strings.TrimSpace(o.tlsKey)

	secure := r.HTTPServerCert != "" && r.HTTPServerKey != ""
	r.OnHTTPListening = func(a net.Addr) {
		announce(endpointURL(host, a, path, secure))
	}
	return nil
}

func endpointPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/mcp"
	}
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}

// endpointURL renders the address clients should dial. Wildcard binds are
// shown as the bound IP, or loopback when that is unspecified too.
func endpointURL(host string, a net.Addr, path string, secure bool) string {
	scheme := "http"
	if secure {
		scheme = "https"
	}
	tcp, ok := a.(*net.TCPAddr)
	if !ok {
		return fmt.Sprintf("%s://%s%s", scheme, a.String(), path)
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
		if tcp.IP != nil && !tcp.IP.IsUnspecified() {
			host = tcp.IP.String()
		}
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, strconv.Itoa(tcp.Port)), path)
}
