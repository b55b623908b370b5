package commands

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	serverhttp "price-recon-service/server/http"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the HTTP API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := &http.Server{
			Addr:              cfg.Addr(),
			Handler:           serverhttp.NewRouter(cfg, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}
		logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

		errc := make(chan error, 1)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
			close(errc)
		}()

		// graceful shutdown
		select {
		case err := <-errc:
			return err
		case <-cmd.Context().Done():
		}
		logger.Info().Msg("server shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
		logger.Info().Msg("bye")
		return nil
	},
}
