package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/protoglyph/slatedesk/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the slatedesk dev server",
		Long: `Serve loads table definitions and persisted records, then exposes the
query/CRUD API and the record-writer endpoint over HTTP until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openDefaultSession()
			if err != nil {
				return err
			}
			defer sess.close()

			if addr == "" {
				addr = sess.cfg.ListenAddr
			}

			sess.logger.Info("starting slatedesk",
				zap.Int("tables", len(sess.store.Tables())),
				zap.String("persistence", sess.cfg.EffectivePersistence()),
				zap.Int("latency_ms", sess.cfg.LatencyMS))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(sess.store, sess.files, sess.cfg.SchemaDir, sess.logger)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
