package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the course and progress as a read-only JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog, err := newLogger(false)
		if err != nil {
			return err
		}
		defer closeLog()

		be, err := openBackend(cmd, logger)
		if err != nil {
			return err
		}
		defer be.Close()

		catalog, err := playableCatalog(newRand(), logger)
		if err != nil {
			return err
		}

		deps := api.Deps{
			Catalog:     catalog,
			Progress:    be.progress,
			Admin:       cfg.Admin,
			CORSOrigins: cfg.Server.CORSOrigins,
			Logger:      logger,
		}
		if be.store != nil {
			deps.DB = be.store.DB()
		}
		return api.Serve(cmd.Context(), cfg.Server.Addr, api.NewRouter(deps), logger)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8080)")
}
