package cookiecycle

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var settingsPath string

var rootCmd = &cobra.Command{
	Use:   "cookiecycle",
	Short: "Rotate downloader cookies and restart the API server",
	Long: `cookiecycle rotates authentication cookies for the content downloader
and restarts its API server so the new credentials take effect.

A rotation backs up the configuration, applies the cookie file, verifies
the update landed, then replaces the running server and waits until it
answers health probes. Any stage failure aborts the run with exit code 1.`,
	Example: `  # Full rotation from a browser cookie export, auto-detecting the platform
  cookiecycle rotate cookies.txt

  # Rotate TikTok cookies and restart the API on port 8080
  cookiecycle rotate cookies.txt tiktok 8080

  # Apply cookies to configuration only, no restart
  cookiecycle update cookies.txt --platform douyin

  # Watch the running API server
  cookiecycle monitor --schedule "@every 10s"`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Stage failures map to exit code 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cookiecycle: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "tool settings file (default ./cookiecycle.json)")
}
