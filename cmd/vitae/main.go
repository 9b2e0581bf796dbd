package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/vitae/internal/config"
	"github.com/MrSnakeDoc/vitae/internal/logger"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "vitae",
	Short:         "Resume editor with PDF and HTML export",
	Long:          "Vitae edits one resume at a time through a JSON API, stores resumes as JSON documents and exports them to PDF or standalone HTML.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if configFile != "" {
			return os.Setenv("VITAE_CONFIG_FILE", configFile)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML configuration file (environment variables win)")
}

// setup loads the configuration and builds the logger every command uses.
func setup() (*config.Config, logger.Logger) {
	cfg := config.Load()
	return cfg, logger.New(cfg.LogLevel, cfg.PrettyLog)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ vitae: %v\n", err)
		os.Exit(1)
	}
}
