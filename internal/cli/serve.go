package cli

import (
	"github.com/spf13/cobra"

	"github.com/cbegin/musicbytes-go/internal/server"
)

func newServeCommand() *cobra.Command {
	var (
		addr     string
		maxBytes int64
		workers  int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sonification over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(server.WithMaxBodyBytes(maxBytes), server.WithWorkers(workers))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", envOr("MUSICBYTES_ADDR", ":8080"), "listen address")
	cmd.Flags().Int64Var(&maxBytes, "max-bytes", server.DefaultMaxBodyBytes, "largest accepted upload in bytes")
	cmd.Flags().IntVar(&workers, "workers", 4, "tones rendered concurrently per WAV request")
	return cmd
}
