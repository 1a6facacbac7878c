package cookiecycle

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	cfgfile "cookiecycle/internal/adapter/config"
	"cookiecycle/internal/adapter/cookie"
	"cookiecycle/internal/adapter/logger"
	"cookiecycle/internal/adapter/updater"
	"cookiecycle/internal/domain"
)

var (
	updatePlatform string
	updateConfig   string
	updateDryRun   bool
)

var updateCmd = &cobra.Command{
	Use:   "update <cookie_file>",
	Short: "Apply a Netscape cookie export to the downloader configuration",
	Long: `Parse a Netscape-format cookie export, detect or accept the target
platform, assemble the cookie header and write it into the downloader
configuration (and its Volume mirror used by API mode).

With --dry-run nothing is written; the detected platform is emitted as a
single machine-readable "` + updater.DetectedMarker + `<platform>" line.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updatePlatform, "platform", "auto", "target platform: douyin, tiktok, kuaishou or auto")
	updateCmd.Flags().StringVar(&updateConfig, "config", "", "configuration file to update (default: first recognized path)")
	updateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "parse and detect only, do not update configuration")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	platform, err := domain.ParsePlatform(updatePlatform)
	if err != nil {
		return err
	}

	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: cookie file %s: %v", domain.ErrMissingInput, path, err)
	}

	cookies, err := cookie.ParseFile(path)
	if err != nil {
		return err
	}
	if len(cookies) == 0 {
		return fmt.Errorf("%w: no usable cookies in %s", domain.ErrMissingInput, path)
	}
	fmt.Printf("parsed %d cookies from %s\n", len(cookies), path)

	if platform == domain.PlatformAuto {
		detected, ok := cookie.Classify(cookies)
		if !ok {
			return fmt.Errorf("%w: unable to detect platform from cookie domains, pass --platform", domain.ErrInvalidPlatform)
		}
		platform = detected
	}
	fmt.Printf("platform: %s (%s)\n", platform, platform.DisplayName())

	header := cookie.HeaderString(cookies, platform)
	fmt.Printf("cookie header: %d chars\n", utf8.RuneCountInString(header))
	fmt.Printf("preview: %s\n", previewHeader(header))

	if updateDryRun {
		fmt.Printf("%s%s\n", updater.DetectedMarker, platform)
		return nil
	}

	var locator *cfgfile.Locator
	if updateConfig != "" {
		locator = cfgfile.NewLocator(updateConfig)
	} else {
		locator = cfgfile.NewLocator()
	}

	writer := cfgfile.NewWriter(locator, logger.New())
	cfgPath, field, err := writer.Apply(header, platform)
	if err != nil {
		return err
	}

	fmt.Printf("%s cookie written to %s (field %s)\n", platform.DisplayName(), cfgPath, field)
	fmt.Println("restart the API server (or run \"cookiecycle rotate\") to pick it up")
	return nil
}

func previewHeader(header string) string {
	runes := []rune(header)
	if len(runes) <= 100 {
		return header
	}
	return string(runes[:100]) + "..."
}
