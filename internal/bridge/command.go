package bridge

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/RobinCoderZhao/apibridge/pkg/config"
	"github.com/RobinCoderZhao/apibridge/pkg/mcpserver"
	"github.com/RobinCoderZhao/apibridge/pkg/render"
)

// Platform is a loaded and validated bridge configuration.
type Platform interface {
	// MCP returns the transport settings; flags may modify them before the
	// server starts.
	MCP() *Settings
	NewServer(version string, logger *slog.Logger) (*mcpserver.Server, error)
}

// App describes one bridge binary.
type App struct {
	Name    string
	Short   string
	Version string

	// Load reads configuration from path (empty for environment only).
	Load func(path string) (Platform, error)
	// Catalog builds a server without credentials, for listing tools.
	Catalog func(version string) (*mcpserver.Server, error)
}

// Command builds the cobra command tree for the app.
func (a App) Command() *cobra.Command {
	var (
		configPath string
		transport  string
		addr       string
	)

	root := &cobra.Command{
		Use:           a.Name,
		Short:         a.Short,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.Load(configPath)
			if err != nil {
				return err
			}
			s := p.MCP()
			if cmd.Flags().Changed("transport") {
				s.Transport = transport
			}
			if cmd.Flags().Changed("addr") {
				s.HTTPAddr = addr
			}
			if err := s.Validate(); err != nil {
				return err
			}

			logger := NewLogger(cmd.ErrOrStderr(), s.LogLevel)
			slog.SetDefault(logger)

			srv, err := p.NewServer(a.Version, logger)
			if err != nil {
				return fmt.Errorf("build server: %w", err)
			}

			if strings.EqualFold(s.Transport, TransportHTTP) {
				srv.SetJWTSecret(s.JWTSecret)
				srv.SetSessionTTL(s.SessionTTL)
				return srv.RunHTTP(s.HTTPAddr)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	root.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	root.Flags().StringVarP(&transport, "transport", "t", TransportStdio, "transport to serve on (stdio or http)")
	root.Flags().StringVar(&addr, "addr", defaultHTTPAddr, "listen address for the http transport")

	root.AddCommand(a.toolsCmd(), a.versionCmd())
	return root
}

func (a App) toolsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := a.Catalog(a.Version)
			if err != nil {
				return err
			}
			tools := srv.Tools()
			out := cmd.OutOrStdout()

			if asJSON {
				text, err := render.JSON(tools)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
				return nil
			}
			for _, t := range tools {
				fmt.Fprintf(out, "%-32s %s\n", t.Name, hints(t.Annotations))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print full definitions as JSON")
	return cmd
}

func hints(a mcpserver.ToolAnnotations) string {
	var tags []string
	if a.ReadOnlyHint {
		tags = append(tags, "read-only")
	}
	if a.DestructiveHint {
		tags = append(tags, "destructive")
	}
	if a.IdempotentHint {
		tags = append(tags, "idempotent")
	}
	return strings.Join(tags, ", ")
}

func (a App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", a.Name, a.Version)
		},
	}
}

// Execute runs the app with args and returns the process exit code. A
// missing credential prints only its remediation text.
func Execute(ctx context.Context, a App, args []string, stderr io.Writer) int {
	cmd := a.Command()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if config.IsMissing(err) {
			fmt.Fprintln(stderr, err)
		} else {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}
