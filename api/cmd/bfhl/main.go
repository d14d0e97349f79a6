package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	flagConfig   string
	flagEnvFiles []string
	flagPort     string
)

var rootCmd = &cobra.Command{
	Use:           "bfhl",
	Short:         "bfhl HTTP service: fibonacci, primes, lcm/hcf and one-word AI answers",
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default)",
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "path to a TOML config file (env BFHL_CONFIG)")
	pf.StringSliceVar(&flagEnvFiles, "env-file", nil, "dotenv files to load (default .env if present)")
	pf.StringVar(&flagPort, "port", "", "listen port, overrides PORT")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
