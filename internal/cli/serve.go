package cli

import (
	"context"
	"errors"
	"fmt"
	netHttp "net/http"
	"time"

	"pulse-server/internal/adapters/http"
	"pulse-server/internal/adapters/http/response"
	"pulse-server/internal/adapters/ws"
	appmetrics "pulse-server/internal/application/metrics"
	"pulse-server/internal/application/workers"
	"pulse-server/internal/config"
	"pulse-server/internal/core"
	"pulse-server/internal/domain"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sample continuously and serve the dashboard API",
	Long: `Start the sampler and the HTTP server.

Endpoints:
  GET /api/stats             latest snapshot (503 until the first sample)
  GET /api/history           rolling history of every series
  GET /api/history/{series}  one of cpu, memory, temperature, network
  GET /api/status            sampler state
  GET /ws                    live snapshot stream`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCommand(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serveCommand(ctx context.Context) error {
	p, err := newPipeline(config.ModeServe)
	if err != nil {
		return err
	}
	defer p.log.Sync()

	g, gctx := errgroup.WithContext(ctx)

	svc := appmetrics.NewService(p.cfg, p.history, p.log)
	hub := ws.NewHub(gctx, p.log)
	res := response.NewJSONWriter(p.log)

	router := http.NewRouter(p.cfg, &http.RouterDeps{
		WS:      ws.NewHandler(hub, p.cfg, svc.Latest, p.log),
		Metrics: http.NewMetricsHandler(svc, res),
		Res:     res,
		Log:     p.log,
	})
	srv := http.NewServer(router, p.cfg.Address)

	sched := core.NewScheduler(p.cfg.Interval, p.log, p.sampler.Collect, func(m domain.Snapshot) {
		svc.Publish(m)
		hub.PublishSnapshot(m)
	})

	manager := workers.NewManager(workers.NewScheduler(p.log), p.cfg, p.log, &workers.ManagerServices{
		Metrics: svc,
	})
	manager.Start(gctx)

	g.Go(func() error {
		return sched.Start(gctx)
	})

	g.Go(func() error {
		hub.Run()
		return nil
	})

	g.Go(func() error {
		p.log.Info("http: starting server", "address", p.cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, netHttp.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		hub.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			p.log.Error("http: server shutdown error", "error", err)
		}
		return nil
	})

	err = g.Wait()
	p.log.Info("server stopped")
	return err
}
