package cookiecycle

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	toolcfg "cookiecycle/config"
	"cookiecycle/internal/adapter/logger"
	"cookiecycle/internal/adapter/monitor"
	"cookiecycle/internal/adapter/probe"
)

var monitorSchedule string

var monitorCmd = &cobra.Command{
	Use:   "monitor [api_port]",
	Short: "Periodically probe the running API server",
	Long: `Probe the API server's root and docs endpoints on a schedule and log
whether it is responding. Runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().StringVar(&monitorSchedule, "schedule", "@every 30s", "probe schedule (cron expression)")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := toolcfg.Load(settingsPath)
	if err != nil {
		return err
	}

	port := cfg.APIPort
	if len(args) > 0 {
		port, err = strconv.Atoi(args[0])
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid api_port %q", args[0])
		}
	}

	log := logger.New()
	svc := monitor.New(probe.NewHTTP("127.0.0.1", cfg.ProbeTimeout, log), log, port, monitorSchedule)
	if err := svc.Start(); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("stopping monitor")
	svc.Stop()
	return nil
}
