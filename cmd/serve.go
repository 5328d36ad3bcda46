package cmd

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Tmalone1250/mtk-sale/config"
	"github.com/Tmalone1250/mtk-sale/events"
	"github.com/Tmalone1250/mtk-sale/exception"
	"github.com/Tmalone1250/mtk-sale/logx"
	"github.com/Tmalone1250/mtk-sale/monitoring"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the metrics endpoint and stream ledger events to the log",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			logx.Error("SERVE CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	settings, err := config.LoadMetricsSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.ListenAddr == "" {
		settings.ListenAddr = config.DefaultMetricsAddr
	}

	rs, err := openState()
	if err != nil {
		return err
	}
	defer rs.close()

	monitoring.InitMetrics()
	supply, err := rs.ledger.TotalSupply()
	if err != nil {
		return err
	}
	monitoring.SetTotalSupply(supply)

	mux := http.NewServeMux()
	monitoring.RegisterMetrics(mux)

	subID, eventCh := rs.eventBus.Subscribe()
	defer rs.eventBus.Unsubscribe(subID)

	exception.SafeGo("event-drain", func() {
		drainEvents(eventCh)
	})
	// a panic here would leave the process alive with no metrics endpoint
	exception.SafeGoWithPanic("metrics-server", func() {
		logx.Info("SERVE", "metrics listening on", settings.ListenAddr)
		if err := http.ListenAndServe(settings.ListenAddr, mux); err != nil {
			logx.Error("SERVE", "metrics server stopped", err)
		}
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logx.Info("SERVE", "shutting down on signal", sig.String())
	return nil
}

func drainEvents(ch chan events.LedgerEvent) {
	for ev := range ch {
		logx.Info("EVENT", string(ev.Type()), ev.Principal(), ev.Timestamp().UTC().Format("2006-01-02T15:04:05Z07:00"))
	}
}
