package cookiecycle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	toolcfg "cookiecycle/config"
	"cookiecycle/internal/adapter/backup"
	cfgfile "cookiecycle/internal/adapter/config"
	"cookiecycle/internal/adapter/logger"
	"cookiecycle/internal/adapter/probe"
	"cookiecycle/internal/adapter/process"
	"cookiecycle/internal/adapter/updater"
	"cookiecycle/internal/app"
	"cookiecycle/internal/domain"
)

var strictBackup bool

var rotateCmd = &cobra.Command{
	Use:   "rotate <cookie_file> [platform] [api_port]",
	Short: "Rotate cookies and restart the API server",
	Long: `Run the full update cycle: back up configuration, apply the cookie file
via the updater, verify the cookie field landed, replace the running API
server and wait until it answers health probes.

platform is one of douyin, tiktok, kuaishou or auto (default auto);
api_port defaults to the configured port (5555).`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runRotate,
}

func init() {
	rotateCmd.Flags().BoolVar(&strictBackup, "strict-backup", false, "abort the run when the configuration backup fails")
	rootCmd.AddCommand(rotateCmd)
}

func runRotate(cmd *cobra.Command, args []string) error {
	cfg, err := toolcfg.Load(settingsPath)
	if err != nil {
		return err
	}

	platform := domain.PlatformAuto
	if len(args) > 1 {
		platform, err = domain.ParsePlatform(args[1])
		if err != nil {
			return err
		}
	}

	port := cfg.APIPort
	if len(args) > 2 {
		port, err = strconv.Atoi(args[2])
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid api_port %q", args[2])
		}
	}

	strict := cfg.StrictBackup
	if cmd.Flags().Changed("strict-backup") {
		strict = strictBackup
	}

	log := logger.New()

	updaterCmd, err := resolveUpdaterCommand(cfg.UpdaterCommand)
	if err != nil {
		return err
	}

	locator := cfgfile.NewLocator()
	svc := app.NewService(
		locator,
		backup.NewManager(),
		updater.NewExec(updaterCmd, log),
		cfgfile.NewVerifier(locator),
		process.NewManager(process.NewGopsutilFinder(), log, process.Options{
			ServerCommand: cfg.ServerCommand,
			Host:          cfg.ServerHost,
			Pattern:       cfg.ProcessPattern,
			LogFile:       cfg.ServerLog,
			GraceTimeout:  cfg.GraceTimeout,
			KillTimeout:   cfg.KillTimeout,
			SettleTimeout: cfg.SettleTimeout,
		}),
		probe.NewHTTP("127.0.0.1", cfg.ProbeTimeout, log),
		log,
	)

	outcome, err := svc.Run(app.Config{
		CookieFile:   args[0],
		Platform:     platform,
		Port:         port,
		StrictBackup: strict,
	})
	if err != nil {
		return err
	}

	printOutcome(outcome)
	return nil
}

// resolveUpdaterCommand picks the configured external updater, or this
// binary's own update subcommand when none is configured.
func resolveUpdaterCommand(configured string) ([]string, error) {
	if configured != "" {
		return strings.Fields(configured), nil
	}
	return updater.SelfCommand()
}

func printOutcome(o *app.Outcome) {
	base := fmt.Sprintf("http://127.0.0.1:%d", o.Process.ListenPort)

	fmt.Printf("%s cookie updated and API server restarted (pid %d)\n", o.Platform.DisplayName(), o.Process.PID)
	if o.BackupPath != "" {
		fmt.Printf("configuration backup: %s\n", o.BackupPath)
	}
	fmt.Printf("cookie field: %d chars, preview: %s\n", o.Verification.Length, o.Verification.Preview)
	fmt.Println()
	fmt.Printf("API docs: %s/docs\n", base)
	fmt.Println("Example request:")
	fmt.Printf("  curl -X POST %s/%s/detail -H 'Content-Type: application/json' -d '{\"detail_id\": \"...\"}'\n",
		base, o.Platform)
}
