package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docfold/docfold/bootstrap"
	"github.com/docfold/docfold/pkg/conf"
	"github.com/docfold/docfold/pkg/crontab"
	"github.com/docfold/docfold/pkg/util"
	"github.com/docfold/docfold/routers"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds the wait for in-flight requests on exit.
const shutdownTimeout = 30 * time.Second

func init() {
	rootCmd.AddCommand(serverCmd)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start a docfold server with the given config file",
	Run: func(cmd *cobra.Command, args []string) {
		bootstrap.Init(confPath)
		l := util.Log()

		server := &http.Server{
			Addr:    conf.SystemConfig.Listen,
			Handler: routers.InitRouter(),
		}

		// Graceful shutdown after received signal.
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
		done := make(chan struct{})
		go shutdown(sigChan, done, server)

		l.Info("Listening to %q", conf.SystemConfig.Listen)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("Failed to listen to %q: %s", conf.SystemConfig.Listen, err)
			os.Exit(1)
		}

		<-done
	},
}

func shutdown(sigChan chan os.Signal, done chan struct{}, server *http.Server) {
	sig := <-sigChan
	l := util.Log()
	l.Info("Signal %s received, shutting down server...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		l.Warning("Failed to shutdown server: %s", err)
	}

	select {
	case <-crontab.Stop().Done():
	case <-ctx.Done():
		l.Warning("Crontab jobs are still running after %s.", shutdownTimeout)
	}

	close(done)
}
