package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"superstore-dashboard/internal/config"
)

var (
	cfgFile string
	version = "1.0.0"
	rootCmd = &cobra.Command{
		Use:   "dashboard",
		Short: "Superstore sales dashboard",
		Long: `Loads the superstore sales file once and serves the interactive dashboard,
or prints one view of it to the terminal.`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("csv", "", "sales csv file (overrides data.csv_file)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "log format (json, text)")

	_ = viper.BindPFlag("data.csv_file", rootCmd.PersistentFlags().Lookup("csv"))
	_ = viper.BindPFlag("logger.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logger.format", rootCmd.PersistentFlags().Lookup("log-format"))

	serve := serveCmd()
	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(versionCmd())

	// plain `dashboard` keeps starting the web server
	rootCmd.RunE = serve.RunE
	rootCmd.Flags().AddFlagSet(serve.Flags())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig merges defaults, the config file, env vars and bound flags.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper(), cfgFile)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
