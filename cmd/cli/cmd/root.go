// Package cmd provides the CLI commands for window-quote.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"window-quote/internal/config"
	"window-quote/internal/logging"
)

// Version is the CLI version
const Version = "0.1.0"

var (
	cfgFile     string
	verbose     bool
	tariffPath  string
	catalogPath string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "window-quote",
	Short: "Itemized price quotes for windows and accessories",
	Long: `window-quote computes itemized price quotes for blinds, roller shades,
mosquito nets, glass units, windowsills, drip caps, security film and OSB
sheeting from a catalog and a tariff.

Examples:
  window-quote quote osb --width 2 --height 1.5
  window-quote quote drip --attr width_mm=150 --length 3
  window-quote batch quotes.yaml --format json
  window-quote validate`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.window-quote/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&tariffPath, "tariff", "", "tariff HCL file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog YAML file (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "window-quote version %s\n", Version)
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			path = filepath.Join(home, ".window-quote", "config.json")
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
