package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/joelkehle/targetscout/internal/curated"
	"github.com/joelkehle/targetscout/internal/discovery"
	"github.com/joelkehle/targetscout/internal/httpapi"
	"github.com/joelkehle/targetscout/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the research API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.HTTPAddr
		}

		ctx := context.Background()
		shutdown, err := telemetry.Setup(ctx, cfg.OTLPEndpoint)
		if err != nil {
			return err
		}
		defer shutdown(context.Background())

		store := openCache()
		if store != nil {
			defer store.Close()
		}

		trials := newTrialClient()
		handler := httpapi.NewServer(
			newDiscoverer(trials),
			discovery.NewVerifier(curated.Open()),
			trials,
			store,
			version,
		)
		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("targetscout http listening addr=%s", addr)
			errCh <- srv.ListenAndServe()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case sig := <-stop:
			log.Printf("targetscout http shutting_down signal=%s", sig)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from TARGETSCOUT_HTTP_ADDR)")

	rootCmd.AddCommand(serveCmd)
}
