package cmd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/novapath/trident/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assessment over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		ctx := cmd.Context()
		d, err := openDeps(ctx, depsOptions{registry: reg})
		if err != nil {
			return err
		}
		defer d.Close()

		srv := httpapi.New(httpapi.Options{
			Sessions:    d.sessions,
			Guidance:    d.guidance,
			Metrics:     d.metrics,
			Gatherer:    reg,
			Logger:      d.logger.Named("http"),
			CORSOrigins: cfg.Server.CORS,
			TopN:        cfg.TopN,
		})
		d.logger.Info("starting server", zap.String("addr", cfg.Server.Addr), zap.String("db", d.dbPath))
		return srv.Serve(ctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
