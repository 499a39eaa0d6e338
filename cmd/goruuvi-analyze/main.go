package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/d21d3q/goruuvi/internal/config"
	"github.com/d21d3q/goruuvi/pkg/goruuvi"
)

var (
	rootCmd = &cobra.Command{
		Use:   "goruuvi-analyze [hex]",
		Short: "Decode Ruuvi sensor payloads",
		Long: "goruuvi-analyze decodes the manufacturer-specific payload of Ruuvi " +
			"advertisements (data formats 3, 5, C5 and encrypted 8).",
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := analyzeOptions()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if len(args) == 0 {
				return runInteractive(ctx, opts)
			}
			return runAnalyze(ctx, opts, args[0])
		},
	}

	deviceIDHex string
	password    string
	passwordHex string
	configPath  string
	jsonOutput  bool
	verbose     bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&deviceIDHex, "device-id", "", "hex-encoded 8-byte device id for format 8 payloads")
	flags.StringVar(&password, "password", "", "16-character password for format 8 payloads")
	flags.StringVar(&passwordHex, "password-hex", "", "hex-encoded 16-byte password (32 hex chars)")
	flags.StringVar(&configPath, "config", "", "YAML file with per-device credentials")
	flags.BoolVar(&jsonOutput, "json", false, "print the full result as JSON")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

func analyzeOptions() (goruuvi.AnalyzeOptions, error) {
	opts := goruuvi.AnalyzeOptions{
		DeviceIDHex: deviceIDHex,
		Password:    password,
		PasswordHex: passwordHex,
	}
	if configPath == "" {
		return opts, nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return opts, err
	}
	logrus.WithFields(logrus.Fields{
		"path":    configPath,
		"devices": len(cfg.Devices),
	}).Debug("loaded credentials")
	opts.Keyring = cfg
	return opts, nil
}

func runInteractive(ctx context.Context, opts goruuvi.AnalyzeOptions) error {
	scanner := bufio.NewScanner(os.Stdin)
	logrus.Info("goruuvi analyze mode. Paste a hex payload and press Enter (Ctrl+D to exit).")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runAnalyze(ctx, opts, line); err != nil {
			logrus.WithError(err).Error("failed to decode payload")
		}
	}
	return scanner.Err()
}

func runAnalyze(ctx context.Context, opts goruuvi.AnalyzeOptions, hex string) error {
	result, err := goruuvi.AnalyzeHexWithOptions(ctx, hex, opts)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"format": result.Format,
		"bytes":  result.ByteCount,
	}).Debug("decoded payload")
	if result.Reading != nil && !jsonOutput {
		fmt.Println(result.Reading.String())
		return nil
	}
	fmt.Println(result.String())
	return nil
}
