package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spance/adbpanel-go/analyzer"
	"github.com/spance/adbpanel-go/constants"
	"github.com/spance/adbpanel-go/devicectl"
	"github.com/spance/adbpanel-go/server"
	"github.com/spance/adbpanel-go/utils"
	"github.com/spance/adbpanel-go/web"
	"github.com/spf13/cobra"
)

// Config holds all the configuration values from command line arguments
type Config struct {
	Host       string        `json:"host"`
	Port       int           `json:"port"`
	ADBPath    string        `json:"adb_path"`
	ADBTimeout time.Duration `json:"adb_timeout"`

	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
	APIKey  string `json:"api_key"`

	ListDevices bool `json:"list_devices"`
	ListKeys    bool `json:"list_keys"`
	Debug       bool `json:"debug"`
}

var config = &Config{}

var rootCmd = &cobra.Command{
	Use:   "adbpanel",
	Short: "adbpanel - browser control panel for an Android device",
	Long: `adbpanel serves a browser-based remote-control panel for a single
Android device reachable via adb: list devices, connect, capture the screen,
and send taps, keys, swipes and text from the page.`,
	Example: `  # Serve the panel on the default address
  adbpanel

  # Serve on all interfaces, custom port
  adbpanel --host 0.0.0.0 --port 8080

  # Use a specific adb binary
  adbpanel --adb-path /opt/platform-tools/adb

  # List connected devices and exit
  adbpanel --list-devices

  # Enable the screenshot analyzer
  adbpanel --apikey sk-xxxxx --base-url https://api.openai.com/v1 --model gpt-4o`,
	Run: func(cmd *cobra.Command, args []string) {},
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as int with default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func init() {
	rootCmd.PersistentFlags().StringVar(&config.Host, "host",
		getEnv("ADBPANEL_HOST", "127.0.0.1"),
		"Address the panel listens on")

	rootCmd.PersistentFlags().IntVar(&config.Port, "port",
		getEnvInt("ADBPANEL_PORT", 5000),
		"Port the panel listens on")

	rootCmd.PersistentFlags().StringVar(&config.ADBPath, "adb-path",
		getEnv("ADBPANEL_ADB_PATH", "adb"),
		"Path to the adb binary")

	rootCmd.PersistentFlags().DurationVar(&config.ADBTimeout, "adb-timeout",
		time.Duration(getEnvInt("ADBPANEL_ADB_TIMEOUT_SEC", 10))*time.Second,
		"Timeout for every adb invocation")

	// Analyzer options
	rootCmd.PersistentFlags().StringVar(&config.BaseURL, "base-url",
		getEnv("ADBPANEL_BASE_URL", "https://api.openai.com/v1"),
		"Vision model API base URL")

	rootCmd.PersistentFlags().StringVar(&config.Model, "model",
		getEnv("ADBPANEL_MODEL", "gpt-4o"),
		"Vision model name")

	rootCmd.PersistentFlags().StringVar(&config.APIKey, "apikey",
		getEnv("ADBPANEL_API_KEY", ""),
		"API key for the screenshot analyzer (empty disables it)")

	rootCmd.PersistentFlags().BoolVar(&config.ListDevices, "list-devices", false,
		"List connected devices and exit")

	rootCmd.PersistentFlags().BoolVar(&config.ListKeys, "list-keys", false,
		"List known key names and exit")

	rootCmd.PersistentFlags().BoolVar(&config.Debug, "debug", false,
		"Enable debug logging")
}

func main() {
	cobra.CheckErr(rootCmd.Execute())

	// Configure zerolog
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if config.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Str("config", utils.JsonIndent(config)).Msg("configuration")
	}

	ctx := context.Background()

	if config.ListKeys {
		keycodes, err := constants.LoadKeycodes()
		if err != nil {
			log.Error().Err(err).Msg("loading keycodes failed")
			return
		}
		names := lo.Keys(keycodes)
		sort.Strings(names)
		for _, name := range names {
			log.Info().Str("key", name).Int("code", keycodes[name]).Msg("-")
		}
		return
	}

	if !checkSystemRequirements(config.ADBPath) {
		log.Error().Msg("system check failed, please fix the issues above")
		os.Exit(1)
	}

	device, err := devicectl.CreateDevice(devicectl.ADB, devicectl.Options{
		Path:    config.ADBPath,
		Timeout: config.ADBTimeout,
	})
	if err != nil {
		log.Error().Err(err).Msg("creating device failed")
		os.Exit(1)
	}

	if config.ListDevices {
		printDeviceList(ctx, device)
		return
	}

	var scanner *analyzer.Analyzer
	if config.APIKey != "" {
		scanner = analyzer.New(&analyzer.Config{
			BaseURL: config.BaseURL,
			Model:   config.Model,
			APIKey:  config.APIKey,
		})
	}

	srv := server.New(server.Options{
		Device:   device,
		Session:  server.NewSession(),
		Analyzer: scanner,
		IndexHTML: web.RenderIndex(web.PageConfig{
			Title:           "adbpanel",
			AnalyzerEnabled: scanner != nil,
		}),
		Static: web.Static(),
		Debug:  config.Debug,
	})

	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	log.Info().Msgf("panel address: http://%s", addr)
	if err := srv.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func printDeviceList(ctx context.Context, device devicectl.Device) {
	devices, err := device.ListDevices(ctx)
	if err != nil {
		log.Error().Err(err).Msg("listing devices failed")
		return
	}
	if len(devices) == 0 {
		log.Info().Msg("No devices connected.")
		return
	}

	log.Info().Msg("Connected devices:")
	log.Info().Msg(strings.Repeat("-", 60))
	for _, d := range devices {
		modelInfo := ""
		if d.Model != "" {
			modelInfo = fmt.Sprintf(" (%s)", d.Model)
		}
		log.Info().Str("device",
			fmt.Sprintf("  %-30s %-12s [%s]%s", d.DeviceID, d.Status, d.ConnectionType, modelInfo)).Msg("")
	}
}

func checkSystemRequirements(adbPath string) bool {
	log.Info().Msg("Checking system requirements...")
	log.Info().Msg(strings.Repeat("-", 50))

	log.Info().Msg("1. Checking ADB installation... ")
	resolved, err := exec.LookPath(adbPath)
	if err != nil {
		log.Error().Msg("FAILED")
		log.Info().Msg("   Error: adb is not installed or not in PATH.")
		log.Info().Msg("   Solution: Install the Android platform tools:")
		log.Info().Msg("     - macOS: brew install android-platform-tools")
		log.Info().Msg("     - Linux: sudo apt install android-tools-adb")
		log.Info().Msg("     - Windows: Download from https://developer.android.com/studio/releases/platform-tools")
		return false
	}

	// Double check by running the version command
	output, err := exec.Command(resolved, "version").Output()
	if err != nil {
		log.Error().Msg("FAILED")
		log.Info().Msgf("   Error: adb failed to run: %v", err)
		return false
	}
	lines := strings.Split(string(output), "\n")
	versionLine := "installed"
	if len(lines) > 0 && strings.TrimSpace(lines[0]) != "" {
		versionLine = strings.TrimSpace(lines[0])
	}
	log.Info().Msgf("OK (%s)", versionLine)

	log.Info().Msg(strings.Repeat("-", 50))
	log.Info().Msg("All system checks passed!")
	return true
}
