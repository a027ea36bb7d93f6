package cli

import (
	"github.com/spf13/cobra"

	"netfield/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered backgrounds over HTTP",
		Long: `Serve poster frames of the background.

  GET /background.png?w=&h=&theme=&seed=&frames=
  GET /palette/{light|dark}
  GET /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = configFromContext(ctx).Server.Addr
			}
			return server.New(loggerFromContext(ctx)).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	return cmd
}
