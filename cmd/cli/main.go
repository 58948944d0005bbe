package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iho/gocalc/internal/infrastructure/logger"
)

const envPrefix = "GOCALC"

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "gocalc",
		Short:         "GoCalc CLI tool",
		Long:          `Loan amortization and financial calculators from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(v, configFile); err != nil {
				return err
			}
			l := logger.New(logger.Config{
				Level:     v.GetString("log-level"),
				Format:    "console",
				Component: "cli",
				Output:    cmd.ErrOrStderr(),
			})
			cmd.SetContext(l.WithContext(cmd.Context()))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Optional config file (yaml, json or toml)")
	flags.String("url", "http://localhost:8080", "Base URL of the GoCalc API")
	flags.Duration("timeout", 10*time.Second, "Request timeout")
	flags.String("lang", "en", "Output language (en, ur)")
	flags.String("log-level", "warn", "Log level for diagnostics on stderr")
	_ = v.BindPFlag("url", flags.Lookup("url"))
	_ = v.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = v.BindPFlag("lang", flags.Lookup("lang"))
	_ = v.BindPFlag("log-level", flags.Lookup("log-level"))

	rootCmd.AddCommand(
		paymentCmd(v),
		scheduleCmd(v),
		calcCmd(v),
		historyCmd(v),
	)

	return rootCmd
}

// loadConfig reads GOCALC_* environment variables and the optional config
// file. Flags set on the command line win over both.
func loadConfig(v *viper.Viper, configFile string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		return nil
	}

	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
